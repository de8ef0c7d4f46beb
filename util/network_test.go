package util

import (
	"net"
	"strconv"
	"testing"
)

func TestFormatAddr(t *testing.T) {
	if got := FormatAddr("127.0.0.1", 4000); got != "127.0.0.1:4000" {
		t.Errorf("FormatAddr() = %q", got)
	}
	if got := FormatAddr("::1", 4000); got != "[::1]:4000" {
		t.Errorf("FormatAddr() = %q", got)
	}
}

func TestFindFreePort(t *testing.T) {
	port, err := FindFreePort()
	if err != nil {
		t.Fatal(err)
	}
	if port < 1 || port > 65535 {
		t.Fatalf("port %d out of range", port)
	}

	// The port should actually be bindable.
	l, err := net.Listen("tcp", "127.0.0.1:"+strconv.Itoa(port))
	if err != nil {
		t.Fatalf("could not bind returned port: %v", err)
	}
	l.Close()
}

func TestBufPool_RoundTrip(t *testing.T) {
	buf := GetBuf()
	if buf == nil || len(*buf) != MessageBufSize {
		t.Fatal("pool returned a bad buffer")
	}
	PutBuf(buf)
	PutBuf(nil) // must not panic
}
