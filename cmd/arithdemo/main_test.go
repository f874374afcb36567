package main

import (
	"bytes"
	"testing"
)

func TestDemoOutput(t *testing.T) {
	var buf bytes.Buffer
	demo(&buf)

	want := "Testing arithmetic operations:\n" +
		"add(4, 2) = 6\n" +
		"subtract(4, 2) = 2\n" +
		"add(10, 5) = 15\n" +
		"subtract(10, 5) = 5\n"

	if have := buf.String(); want != have {
		t.Errorf("demo output:\nwant:\n%s\nhave:\n%s", want, have)
	}
}
