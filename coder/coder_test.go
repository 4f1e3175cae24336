package coder_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/forestvpn/ledctl/coder"
)

func TestEncode(t *testing.T) {
	msg, err := coder.Encode(1, 2, 3, 4, 5, 6, 7)

	if err != nil {
		t.Error(err)
	}

	if msg != 0x123214c7 {
		t.Errorf("%#x != %#x; want ==", msg, 0x123214c7)
	}
}

func TestEncodeFieldRange(t *testing.T) {
	commands := []coder.Command{
		{16, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 32, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, -1},
	}

	for _, cmd := range commands {
		_, err := coder.DefaultLayout.Encode(cmd)

		if !errors.Is(err, coder.ErrFieldRange) {
			t.Errorf("encode %v: %v; want %v", cmd, err, coder.ErrFieldRange)
		}
	}
}

func TestDecode(t *testing.T) {
	cmd := coder.Command{15, 0, 9, 31, 1, 16, 30}
	msg, err := coder.DefaultLayout.Encode(cmd)

	if err != nil {
		t.Error(err)
	}

	decoded := coder.Decode(msg)

	if decoded != cmd {
		t.Errorf("%v != %v; want ==", decoded, cmd)
	}
}

func TestDecodeNarrowLayout(t *testing.T) {
	layout := coder.Layout{1, 1, 1, 1, 1, 1, 2}
	decoded := layout.Decode(0xffffff00 | 0b10110011)
	expected := coder.Command{1, 0, 1, 1, 0, 0, 3}

	if decoded != expected {
		t.Errorf("%v != %v; want ==", decoded, expected)
	}
}

func TestParseLayout(t *testing.T) {
	layout, err := coder.ParseLayout("8, 4,4,4,4,4,4")

	if err != nil {
		t.Error(err)
	}

	if layout.String() != "8,4,4,4,4,4,4" {
		t.Errorf("%s != %s; want ==", layout, "8,4,4,4,4,4,4")
	}

	for _, s := range []string{"4,4,4,5,5,5", "4,4,4,5,5,5,6", "0,4,4,5,5,5,5", "a,4,4,5,5,5,5"} {
		if _, err := coder.ParseLayout(s); !errors.Is(err, coder.ErrLayout) {
			t.Errorf("parse %q: %v; want %v", s, err, coder.ErrLayout)
		}
	}
}

func TestMessage(t *testing.T) {
	expected := []byte{0x12, 0x32, 0x14, 0xc7, 0x12, 0x32, 0x14, 0xc7}
	actual := coder.Message(0x123214c7)

	if !bytes.Equal(actual, expected) {
		t.Errorf("%x != %x; want ==", actual, expected)
	}
}
