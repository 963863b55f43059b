package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/RassulYunussov/forgeclient/common"
)

func printResponse(out io.Writer, resp *common.HttpResponse) error {
	if _, err := fmt.Fprintf(out, "HTTP %d\n", resp.StatusCode); err != nil {
		return err
	}
	keys := make([]string, 0, len(resp.Headers))
	for k := range resp.Headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(out, "%s: %s\n", k, strings.Join(resp.Headers[k], ", ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	body := resp.Body
	var indented bytes.Buffer
	if json.Indent(&indented, body, "", "  ") == nil {
		body = indented.Bytes()
	}
	_, err := fmt.Fprintf(out, "%s\n", body)
	return err
}
