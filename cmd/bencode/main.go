// Copyright 2025 xgfone
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command bencode inspects the bencoded data and the .torrent files.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/alexflint/go-arg"
	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xgfone/go-bencode"
	"github.com/xgfone/go-bencode/metainfo"
)

type dumpCmd struct {
	File string `arg:"positional" help:"the bencoded file to dump, or - for stdin"`
	Raw  bool   `arg:"--raw" help:"dump the decoded values as the raw Go trees"`
}

type torrentCmd struct {
	File        string   `arg:"positional" help:"the .torrent file to inspect"`
	Create      string   `arg:"--create" placeholder:"PATH" help:"create a torrent from the file or directory"`
	Announce    []string `arg:"--announce,separate" help:"the announce url, repeatable"`
	PieceLength int64    `arg:"--piece-length" help:"the piece length in bytes"`
	Comment     string   `arg:"--comment" help:"the free-form comment of the torrent"`
	Out         string   `arg:"--out" help:"the output path, defaulting to <name>.torrent"`
}

var args struct {
	Dump    *dumpCmd    `arg:"subcommand:dump" help:"pretty-print the bencoded input"`
	Torrent *torrentCmd `arg:"subcommand:torrent" help:"inspect or create a .torrent file"`
	Debug   bool        `arg:"--debug" help:"enable the debug logging"`
}

var (
	colorKey     = color.New(color.FgHiYellow).Sprint
	colorString  = color.New(color.FgHiGreen).Sprint
	colorInteger = color.New(color.FgHiBlue).Sprint
	colorBold    = color.New(color.Bold).Sprint
)

func main() {
	p := arg.MustParse(&args)

	log := newLogger(args.Debug)
	defer log.Sync()

	var err error
	switch {
	case args.Dump != nil:
		err = runDump(log, args.Dump)
	case args.Torrent != nil:
		err = runTorrent(log, args.Torrent)
	default:
		p.WriteHelp(os.Stdout)
		return
	}

	if err != nil {
		log.Errorf("%s", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level)
	return zap.New(core).Sugar()
}

func openInput(name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

func runDump(log *zap.SugaredLogger, cmd *dumpCmd) (err error) {
	r, err := openInput(cmd.File)
	if err != nil {
		return
	}
	defer r.Close()

	d := bencode.NewDecoder(r)
	for i := 0; ; i++ {
		v, err := d.DecodeValue()
		if err == io.EOF {
			log.Debugf("decoded %d values, %d bytes", i, d.BytesParsed())
			return nil
		} else if err != nil {
			return fmt.Errorf("error decoding the value %d: %w", i, err)
		}

		if cmd.Raw {
			spew.Dump(v)
		} else {
			printValue(v, "")
		}
	}
}

func printValue(v bencode.Value, indent string) {
	switch x := v.(type) {
	case bencode.Integer:
		fmt.Println(colorInteger(strconv.FormatInt(int64(x), 10)))

	case bencode.String:
		fmt.Println(colorString(formatString(x)))

	case bencode.List:
		if len(x) == 0 {
			fmt.Println("[]")
			return
		}
		fmt.Println("[")
		for _, v := range x {
			fmt.Print(indent + "  - ")
			printValue(v, indent+"    ")
		}
		fmt.Println(indent + "]")

	case bencode.Dictionary:
		if len(x) == 0 {
			fmt.Println("{}")
			return
		}
		fmt.Println("{")
		for _, key := range x.Keys() {
			fmt.Printf("%s  %s: ", indent, colorKey(key))
			printValue(x[key], indent+"  ")
		}
		fmt.Println(indent + "}")
	}
}

// formatString quotes the textual strings and summarizes the binary ones,
// such as the concatenated piece hashes.
func formatString(s bencode.String) string {
	if utf8.Valid(s) {
		return strconv.Quote(string(s))
	}
	if len(s) <= 20 {
		return "0x" + hex.EncodeToString(s)
	}
	return fmt.Sprintf("<%d binary bytes>", len(s))
}

func runTorrent(log *zap.SugaredLogger, cmd *torrentCmd) error {
	if cmd.Create != "" {
		return createTorrent(log, cmd)
	}
	if cmd.File == "" {
		return fmt.Errorf("either a .torrent file or --create is required")
	}
	return inspectTorrent(log, cmd)
}

func inspectTorrent(log *zap.SugaredLogger, cmd *torrentCmd) (err error) {
	mi, err := metainfo.LoadFromFile(cmd.File)
	if err != nil {
		return
	}

	info, err := mi.Info()
	if err != nil {
		return fmt.Errorf("error parsing the info dictionary: %w", err)
	}
	log.Debugf("loaded %s: %d info bytes", cmd.File, len(mi.InfoBytes))

	fmt.Printf("%s: %s\n", colorBold("name"), info.Name)
	fmt.Printf("%s: %s\n", colorBold("infohash"), mi.InfoHash())
	fmt.Printf("%s: %s\n", colorBold("magnet"), mi.Magnet("", mi.InfoHash()))
	if mi.CreationDate > 0 {
		created := time.Unix(mi.CreationDate, 0).UTC().Format(time.RFC3339)
		fmt.Printf("%s: %s\n", colorBold("created"), created)
	}
	if mi.CreatedBy != "" {
		fmt.Printf("%s: %s\n", colorBold("created by"), mi.CreatedBy)
	}
	if mi.Comment != "" {
		fmt.Printf("%s: %s\n", colorBold("comment"), mi.Comment)
	}

	fmt.Printf("%s: %d bytes\n", colorBold("total size"), info.TotalLength())
	fmt.Printf("%s: %d x %d bytes\n", colorBold("pieces"),
		info.CountPieces(), info.PieceLength)

	if announces := mi.Announces().Unique(); len(announces) > 0 {
		fmt.Printf("%s:\n", colorBold("announces"))
		for _, announce := range announces {
			fmt.Printf("  %s\n", announce)
		}
	}

	fmt.Printf("%s:\n", colorBold("files"))
	for _, file := range info.AllFiles() {
		fmt.Printf("  %12d  %s\n", file.Length, file.Path(info))
	}

	return
}

func createTorrent(log *zap.SugaredLogger, cmd *torrentCmd) (err error) {
	pieceLength := cmd.PieceLength
	if pieceLength <= 0 {
		pieceLength = metainfo.PieceSize256KB
	}

	info, err := metainfo.NewInfoFromFilePath(cmd.Create, pieceLength)
	if err != nil {
		return
	}
	log.Debugf("hashed %d pieces of %d bytes", info.CountPieces(), pieceLength)

	infoBytes, err := bencode.EncodeBytes(info)
	if err != nil {
		return
	}

	mi := metainfo.MetaInfo{
		InfoBytes:    infoBytes,
		Comment:      cmd.Comment,
		CreatedBy:    "go-bencode",
		CreationDate: time.Now().Unix(),
	}
	if len(cmd.Announce) > 0 {
		mi.Announce = cmd.Announce[0]
		if len(cmd.Announce) > 1 {
			mi.AnnounceList = metainfo.AnnounceList{cmd.Announce}
		}
	}

	out := cmd.Out
	if out == "" {
		out = info.Name + ".torrent"
	}
	if err = mi.WriteToFile(out); err != nil {
		return
	}

	log.Infof("wrote %s: %s", out, mi.InfoHash())
	return
}
