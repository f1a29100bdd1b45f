// Command ltcdump reads a mono WAV file containing an LTC signal and prints
// every frame recovered from it, one line per frame, along with the sample
// offsets where that frame begins and ends.
package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x42/libltc/frame"
	"github.com/x42/libltc/internal/wavio"
	"github.com/x42/libltc/ltc"
)

func main() {
	pflag.Int("apv", 1920, "nominal audio samples per video frame")
	pflag.Bool("date", false, "decode the embedded date/timezone user bits")
	pflag.Parse()

	cfg := viper.New()
	cfg.BindPFlags(pflag.CommandLine)

	args := pflag.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: ltcdump <file.wav>\n")
		os.Exit(1)
	}

	f, err := os.Open(args[0])
	if err != nil {
		glog.Errorf("could not open %q: %v", args[0], err)
		os.Exit(1)
	}
	defer f.Close()

	pcm, _, err := wavio.ReadMono8(f)
	if err != nil {
		glog.Errorf("could not read %q: %v", args[0], err)
		os.Exit(1)
	}

	useDate := cfg.GetBool("date")
	dec := ltc.NewDecoder(cfg.GetInt("apv"), 32)

	const chunk = 1024
	var total int64
	for total < int64(len(pcm)) {
		end := total + chunk
		if end > int64(len(pcm)) {
			end = int64(len(pcm))
		}
		dec.WriteUint8(pcm[total:end], total)
		total = end

		for {
			ext, ok := dec.Read()
			if !ok {
				break
			}
			printFrame(ext, useDate)
		}
	}
}

func printFrame(ext frame.FrameBitsExt, useDate bool) {
	tc := frame.FrameToTimecode(ext.FrameBits, useDate)

	sep := ':'
	if tc.DropFrame {
		sep = '.'
	}

	reverse := ""
	if ext.Reverse {
		reverse = "  R"
	}

	if useDate {
		fmt.Printf("%04d-%02d-%02d %s %02d:%02d:%02d%c%02d | %8d %8d%s\n",
			tc.Year, tc.Month, tc.Day, tc.Timezone,
			tc.Hours, tc.Minutes, tc.Seconds, sep, tc.Frame,
			ext.OffStart, ext.OffEnd, reverse)
		return
	}
	fmt.Printf("%02d:%02d:%02d%c%02d | %8d %8d%s\n",
		tc.Hours, tc.Minutes, tc.Seconds, sep, tc.Frame,
		ext.OffStart, ext.OffEnd, reverse)
}
