// Package device provides common types shared by the host-side HID endpoints.
package device

// ReportBuilder is implemented by device states that encode to a HID report.
type ReportBuilder interface {
	BuildReport() []byte
}

// Endpoint names the interface a report is sent on.
type Endpoint string

const (
	EndpointKeyboard Endpoint = "keyboard"
	EndpointConsumer Endpoint = "consumer"
)

// Report is a single input report ready to be handed to the host.
type Report struct {
	Endpoint Endpoint
	Data     []byte
}

// ReportFunc receives every report a device emits.
type ReportFunc func(Report)
