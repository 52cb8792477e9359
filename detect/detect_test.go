package detect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/libxmq/xmq/detect"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want detect.ContentType
	}{
		{"xml decl", `<?xml version="1.0"?><a/>`, detect.XML},
		{"json object", `{"x":1}`, detect.JSON},
		{"xmq element", `greeting {`, detect.XMQ},
		{"html tag", `<html><body></body></html>`, detect.HTML},
		{"doctype html", `<!DOCTYPE html><html></html>`, detect.HTML},
		{"doctype xml", `<!DOCTYPE root SYSTEM "x.dtd"><root/>`, detect.XML},
		{"leading comment then xml", `<!-- hi --><?xml version="1.0"?>`, detect.XML},
		{"bare array", `[1,2,3]`, detect.JSON},
		{"bare string", `"hello"`, detect.JSON},
		{"bare number", `42`, detect.JSON},
		{"bare true", `true`, detect.JSON},
		{"bare false", `false`, detect.JSON},
		{"bare null", `null`, detect.JSON},
		{"not a standalone literal", `truest = 1`, detect.XMQ},
		{"generic tag", `<custom>stuff</custom>`, detect.XML},
		{"empty", ``, detect.Unknown},
		{"whitespace only", "   \n\t", detect.Unknown},
		{"utf8 bom then xmq", "\xEF\xBB\xBFgreeting { }", detect.XMQ},
		{"utf16 le bom", "\xFF\xFE<a/>", detect.Unknown},
		{"utf16 be bom", "\xFE\xFF<a/>", detect.Unknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, detect.Detect([]byte(tc.in)))
		})
	}
}
