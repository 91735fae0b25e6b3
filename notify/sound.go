package notify

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/ayoisaiah/tasktimer/internal/logger"
)

var errInvalidSoundFormat = errors.New(
	"invalid sound file format: only MP3, OGG, FLAC, and WAV files are supported",
)

// maxPlayback bounds how long a notification may hold the speaker.
const maxPlayback = 10 * time.Second

// ValidateSoundFile reports whether path has a supported audio extension.
func ValidateSoundFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg", ".mp3", ".flac", ".wav":
		return nil
	}

	return fmt.Errorf("%w: %s", errInvalidSoundFormat, path)
}

// Sound plays an audio file for selected notification titles.
type Sound struct {
	log    *slog.Logger
	play   func(path string) error
	titles map[string]bool
	Path   string
}

// NewSound returns a notifier that plays the file at path whenever a
// notification with one of titles is received.
func NewSound(path string, log *slog.Logger, titles ...string) *Sound {
	if log == nil {
		log = logger.Discard()
	}

	return &Sound{
		Path:   path,
		log:    log,
		titles: titleSet(titles),
		play:   playFile,
	}
}

func (s *Sound) Notify(title, _ string) {
	if s.Path == "" || !s.titles[title] {
		return
	}

	if err := s.play(s.Path); err != nil {
		s.log.Warn("unable to play sound",
			slog.String("path", s.Path),
			slog.Any("error", err),
		)
	}
}

// decode returns an audio stream for the file at path.
func decode(
	r io.ReadCloser,
	path string,
) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		return vorbis.Decode(r)
	case ".mp3":
		return mp3.Decode(r)
	case ".flac":
		return flac.Decode(r)
	case ".wav":
		return wav.Decode(r)
	}

	return nil, beep.Format{}, errInvalidSoundFormat
}

// playFile plays the whole file and waits for it to finish.
func playFile(path string) error {
	if err := ValidateSoundFile(path); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	stream, format, err := decode(f, path)
	if err != nil {
		_ = f.Close()
		return err
	}

	defer stream.Close()

	bufferSize := 10

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Duration(int(time.Second)/bufferSize)),
	)
	if err != nil {
		return err
	}

	defer speaker.Close()

	done := make(chan struct{})

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
	case <-time.After(maxPlayback):
	}

	speaker.Clear()

	return nil
}
