package gpu

import _ "embed"

// grayscaleKernelSource is the data-parallel program compiled at run time
// against the selected device. One work-item per pixel.
//
//go:embed kernels/grayscale.cl
var grayscaleKernelSource string

// grayscaleKernelName is the entry point resolved from the built program.
const grayscaleKernelName = "convertToGrayscale"
