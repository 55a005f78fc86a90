// Package nmappayloads is the port-to-payload table generated from the
// bundled nmap-payloads definitions.
package nmappayloads

//go:generate go run ../../cmd/payloadgen --input nmap-payloads --out generated.go --package nmappayloads --no-color
