package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"xmnote/bridge"
	"xmnote/state"
)

// Spans outputs flat styled text of a single note as YAML. With "reverse"
// flag it reads such YAML and produces note HTML instead.
func Spans(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("spans")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read input: %w", err)
	}

	codec := env.Codec()

	var out []byte
	if cmd.Bool("reverse") {
		st, err := decodeStyledText(data)
		if err != nil {
			return err
		}
		out = []byte(codec.AttributedToHTML(st))
	} else {
		text, _, err := decodeNote(data, env.CodePage)
		if err != nil {
			return err
		}
		st := codec.HTMLToAttributed(text)
		if out, err = yaml.Marshal(&st); err != nil {
			return fmt.Errorf("unable to encode styled text: %w", err)
		}
	}

	fname := cmd.Args().Get(1)
	if len(fname) == 0 {
		if _, err := os.Stdout.Write(out); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
		fname = "STDOUT"
	} else if err := os.WriteFile(fname, out, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	log.Info("Styled text processed", zap.String("from", src), zap.String("to", fname), zap.Bool("reverse", cmd.Bool("reverse")),
		zap.String("size", humanize.Bytes(uint64(len(data)))+" -> "+humanize.Bytes(uint64(len(out)))))
	return nil
}

// decodeStyledText reads YAML produced by Spans. Unknown fields are errors,
// empty input is empty text.
func decodeStyledText(data []byte) (bridge.StyledText, error) {
	var st bridge.StyledText

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&st); err != nil && !errors.Is(err, io.EOF) {
		return bridge.StyledText{}, fmt.Errorf("unable to decode styled text: %w", err)
	}
	return st, nil
}
