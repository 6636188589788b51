package gpu

// DeviceInfo describes an execution device.
type DeviceInfo struct {
	Name       string
	Vendor     string
	Driver     string
	MemoryMB   int
	ComputeCap string
}

// ExecutorInfo describes an executor implementation.
type ExecutorInfo struct {
	Name        string
	Version     string
	Description string
}
