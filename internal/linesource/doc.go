// Package linesource reads newline-delimited text from a serial device.
//
// A Source yields one trimmed line per call to Next and blocks until a full
// line is available. Empty lines are passed through unchanged. Any read
// failure, including end of stream, is reported as a *DeviceError and the
// Source is not usable afterwards; there is no reconnection.
//
// Example usage:
//
//	src, err := linesource.Open(config.SerialConfig{
//	    Device:   "/dev/ttyUSB0",
//	    BaudRate: 57600,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	for {
//	    line, err := src.Next()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Received:", line)
//	}
//
// Close may be called from another goroutine to unblock a pending Next.
package linesource
