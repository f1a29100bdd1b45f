// Command ltcgen renders a continuous LTC stream to a WAV file, starting
// from a configurable timecode and incrementing one frame at a time.
package main

import (
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x42/libltc/frame"
	"github.com/x42/libltc/internal/stats"
	"github.com/x42/libltc/internal/wavio"
	"github.com/x42/libltc/ltc"
)

func main() {
	pflag.String("output", "ltc.wav", "output WAV file path")
	pflag.Int("samplerate", 48000, "audio sample rate")
	pflag.Float64("fps", 29.97, "video frame rate")
	pflag.Bool("dropframe", true, "use drop-frame timecode (29.97fps only)")
	pflag.Int("frames", 0, "number of frames to render (0 = one hour)")
	pflag.Int("hours", 0, "start hour")
	pflag.Int("minutes", 0, "start minute")
	pflag.Int("seconds", 0, "start second")
	pflag.Parse()

	cfg := viper.New()
	cfg.BindPFlags(pflag.CommandLine)
	cfg.SetEnvPrefix("ltcgen")
	cfg.AutomaticEnv()

	fps := cfg.GetFloat64("fps")
	dropframe := cfg.GetBool("dropframe")
	if dropframe && fps != 29.97 && fps != 30000.0/1001.0 {
		glog.Infof("dropframe requested but unsupported at %v fps, disabling", fps)
		dropframe = false
	}

	sampleRate := cfg.GetInt("samplerate")
	enc, err := ltc.NewEncoder(sampleRate, fps, ltc.Standard525_60, false)
	if err != nil {
		glog.Errorf("could not create encoder: %v", err)
		os.Exit(1)
	}
	enc.SetTimecode(frame.Timecode{
		Hours:     cfg.GetInt("hours"),
		Minutes:   cfg.GetInt("minutes"),
		Seconds:   cfg.GetInt("seconds"),
		DropFrame: dropframe,
	})

	numFrames := cfg.GetInt("frames")
	if numFrames <= 0 {
		numFrames = int(fps * 60 * 60)
	}

	f, err := os.Create(cfg.GetString("output"))
	if err != nil {
		glog.Errorf("could not create output file: %v", err)
		os.Exit(1)
	}
	defer f.Close()

	status := stats.New(int(fps) * 2)
	pcm := make([]byte, 0, numFrames*enc.BufferSize())
	start := time.Now()

	for i := 0; i < numFrames; i++ {
		if err := enc.EncodeFrame(); err != nil {
			glog.Errorf("frame %d: %v", i, err)
			status.Dropped(1)
			enc.BufferFlush()
			enc.IncrementTimecode()
			continue
		}
		pcm = append(pcm, enc.Buffer(true)...)
		status.Sent(time.Now(), time.Since(start)-time.Duration(float64(i)*float64(time.Second)/fps))
		enc.IncrementTimecode()
	}

	enc.EndEncode()
	pcm = append(pcm, enc.Buffer(true)...)

	if err := wavio.WriteMono8(f, pcm, sampleRate); err != nil {
		glog.Errorf("could not write WAV file: %v", err)
		os.Exit(1)
	}
	glog.Infof("wrote %d frames: %s", numFrames, status)
}
