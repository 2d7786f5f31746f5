package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"xmnote/archive"
	"xmnote/common"
	"xmnote/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format := env.Cfg.Output.Format
	if cmd.IsSet("to") {
		if format, err = common.ParseOutputFmt(cmd.String("to")); err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Error(err), zap.Stringer("format", env.Cfg.Output.Format))
			format = env.Cfg.Output.Format
		}
	}

	if cmd.IsSet("order") {
		order, err := common.ParseComboOrder(cmd.String("order"))
		if err != nil {
			return fmt.Errorf("unable to use requested combo order: %w", err)
		}
		env.Cfg.Codec.ComboOrder = order
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// old exports may come without any charset declaration, zip archives do
	// not define file name encoding either
	if cp := cmd.String("encoding"); len(cp) > 0 {
		if env.CodePage, err = ianaindex.IANA.Encoding(cp); err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully decoding all notes without byte order mark", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, format, log)
}

// process handles the conversion independently of CLI framework. Source is
// a single note file, a directory or a zip archive optionally followed by path
// inside of it.
func process(ctx context.Context, src, dst string, format common.OutputFmt, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, format, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			return nil
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		archive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if archive {
			pathIn := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := processArchive(ctx, head, pathIn, "", dst, format, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			return nil
		}

		note, err := isNoteFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if !note || len(tail) != 0 {
			return fmt.Errorf("input was not recognized as note (%s)", head)
		}
		if err := processFile(ctx, head, filepath.Base(head), dst, format, log); err != nil {
			log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
		}
		return nil
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

// processDir finds notes and archives under directory and processes them in
// natural name order.
func processDir(ctx context.Context, dir, dst string, format common.OutputFmt, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !env.Cfg.Output.Accepts(path) && !strings.EqualFold(filepath.Ext(path), ".zip") {
			log.Debug("Skipping file, unexpected extension", zap.String("file", path))
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
		return nil
	}
	sort.Sort(natural.StringSlice(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		archive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		if archive {
			if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, format, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			continue
		}

		note, err := isNoteFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		if !note {
			log.Debug("Skipping file, not recognized as note or archive", zap.String("file", path))
			continue
		}
		if err := processFile(ctx, path, rel, dst, format, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
	}
	return nil
}

// processArchive finds notes under "pathIn" inside archive and processes them.
// "pathOut" is archive directory relative to processed source.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, format common.OutputFmt, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	return archive.Walk(ctx, path, pathIn, func(archive string, f *zip.File) error {
		if !env.Cfg.Output.Accepts(f.Name) {
			log.Debug("Skipping file in archive, unexpected extension", zap.String("archive", archive), zap.String("file", f.Name))
			return nil
		}
		note, err := isNoteInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", archive), zap.String("file", f.Name), zap.Error(err))
			return nil
		}
		if !note {
			log.Debug("Skipping file, not recognized as note", zap.String("archive", archive), zap.String("file", f.Name))
			return nil
		}

		count++

		pathInArchive := f.Name
		if env.CodePage != nil && f.NonUTF8 {
			// zip does not define file name encoding, old archives use local code page
			if n, err := env.CodePage.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(env.CodePage)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}

		data, err := readEntry(f)
		if err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", archive), zap.String("file", f.Name), zap.Error(err))
			return nil
		}
		src := filepath.Join(pathOut, filepath.FromSlash(pathInArchive))
		if err := processNote(ctx, data, "", src, dst, format, log); err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", archive), zap.String("file", f.Name), zap.Error(err))
		}
		return nil
	})
}

func readEntry(f *zip.File) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func processFile(ctx context.Context, path, src, dst string, format common.OutputFmt, log *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return processNote(ctx, data, path, src, dst, format, log)
}

// processNote converts single note. "path" is the note file on disk, empty for
// notes coming from archives. "src" is the note path relative to the processed
// source, "dst" is the destination directory.
func processNote(ctx context.Context, data []byte, path, src, dst string, format common.OutputFmt, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Debug("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		}
	}(time.Now())

	text, enc, err := decodeNote(data, env.CodePage)
	if err != nil {
		return err
	}

	codec := env.Codec()
	doc := codec.HTMLToDocument(text)

	var out string
	switch format {
	case common.OutputFmtHtml:
		out = codec.DocumentToHTML(doc)
	case common.OutputFmtText:
		out = doc.PlainText()
	case common.OutputFmtTree:
		out = doc.String()
	case common.OutputFmtXml:
		if out, err = doc.XML().WriteToString(); err != nil {
			return fmt.Errorf("unable to generate output: %w", err)
		}
	default:
		// this should never happen
		return fmt.Errorf("unsupported output format %s", format)
	}

	outputName = buildOutputPath(doc, src, dst, format, env)
	if len(path) > 0 && outputName == path {
		return fmt.Errorf("output would replace source note: %s", outputName)
	}
	if err := prepareOutput(outputName, env.Overwrite, log); err != nil {
		return err
	}
	if err := os.WriteFile(outputName, []byte(out), 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	log.Info("Note converted", zap.String("from", src), zap.String("to", outputName), zap.String("encoding", enc),
		zap.String("size", humanize.Bytes(uint64(len(data)))+" -> "+humanize.Bytes(uint64(len(out)))),
		zap.Int("blocks", len(doc.Blocks)), zap.Bool("empty", doc.IsEmpty()))

	if env.Rpt != nil {
		name := filepath.ToSlash(src)
		if len(path) > 0 {
			if err := env.Rpt.StoreCopy("source/"+name, path); err != nil {
				log.Warn("Unable to store source in report", zap.String("file", path), zap.Error(err))
			}
		} else {
			env.Rpt.StoreData("source/"+name, data)
		}
		env.Rpt.Store("result/"+name+format.Ext(), outputName)
		if format != common.OutputFmtTree {
			env.Rpt.StoreData("tree/"+name+common.OutputFmtTree.Ext(), []byte(doc.String()))
		}
	}
	return nil
}

// prepareOutput makes sure output file could be written.
func prepareOutput(name string, overwrite bool, log *zap.Logger) error {
	_, err := os.Stat(name)
	switch {
	case err == nil:
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		return nil
	case !os.IsNotExist(err):
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}
