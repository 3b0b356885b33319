package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/hashicorp/go-msgpack/codec"
	"github.com/penwyp/go-consensus-timeline/internal/core/model"
)

// Encode writes events to w in the given format
func Encode(w io.Writer, events []model.Event, format Format) error {
	bw := bufio.NewWriter(w)

	var err error
	switch format {
	case FormatJSONL:
		err = encodeJSONL(bw, events)
	case FormatJSON:
		err = encodeJSON(bw, events)
	case FormatMsgpack:
		enc := codec.NewEncoder(bw, &codec.MsgpackHandle{})
		for i := range events {
			if err = enc.Encode(&events[i]); err != nil {
				break
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

func encodeJSONL(w io.Writer, events []model.Event) error {
	for _, e := range events {
		data, err := sonic.Marshal(e)
		if err != nil {
			return err
		}
		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

func encodeJSON(w io.Writer, events []model.Event) error {
	if events == nil {
		events = []model.Event{}
	}
	data, err := sonic.ConfigStd.MarshalIndent(events, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteFile writes events to path, choosing the format from the extension
func WriteFile(path string, events []model.Event) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create event file: %w", err)
	}

	if err := Encode(file, events, format); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
