// Package video encodes rendered frames into a movie with ffmpeg.
package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strings"
)

// Params describes the output movie
type Params struct {
	Width, Height int
	FPS           int
	Output        string
	Codec         string // ffmpeg encoder name, e.g. libx264
	Quality       int
}

// Encoder opens frame streams
type Encoder interface {
	Open(ctx context.Context, p Params) (Stream, error)
}

// Stream accepts frames in presentation order
type Stream interface {
	WriteFrame(img image.Image) error
	Close() error
}

// FFmpegEncoder pipes raw RGBA frames into an ffmpeg process
type FFmpegEncoder struct {
	Binary string // Defaults to "ffmpeg"
}

func (e *FFmpegEncoder) binary() string {
	if e.Binary == "" {
		return "ffmpeg"
	}
	return e.Binary
}

func (e *FFmpegEncoder) Open(ctx context.Context, p Params) (Stream, error) {
	if p.Width <= 0 || p.Height <= 0 || p.FPS <= 0 {
		return nil, fmt.Errorf("invalid video params %dx%d@%d", p.Width, p.Height, p.FPS)
	}
	cmd := exec.CommandContext(ctx, e.binary(), buildFFmpegArgs(p)...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	s := &ffmpegStream{cmd: cmd, stdin: stdin, width: p.Width, height: p.Height}
	cmd.Stderr = &s.log

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return s, nil
}

func buildFFmpegArgs(p Params) []string {
	codec := p.Codec
	if codec == "" {
		codec = "libx264"
	}
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-framerate", fmt.Sprintf("%d", p.FPS),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", codec,
	}

	// Quality knob differs per encoder
	switch codec {
	case "h264_videotoolbox":
		bitrate := p.Quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", p.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", p.Quality), "-preset", "medium")
	}

	args = append(args, "-movflags", "+faststart", p.Output)
	return args
}

type ffmpegStream struct {
	cmd           *exec.Cmd
	stdin         io.WriteCloser
	log           bytes.Buffer
	width, height int
	closed        bool
}

func (s *ffmpegStream) WriteFrame(img image.Image) error {
	if s.closed {
		return errors.New("stream closed")
	}
	if b := img.Bounds(); b.Dx() != s.width || b.Dy() != s.height {
		return fmt.Errorf("frame size %dx%d, stream expects %dx%d", b.Dx(), b.Dy(), s.width, s.height)
	}
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	return nil
}

func (s *ffmpegStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, tail(s.log.String(), 2048))
	}
	return nil
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// BestH264Encoder picks a hardware H.264 encoder when ffmpeg offers one,
// otherwise libx264.
func BestH264Encoder(ctx context.Context, binary string) string {
	if binary == "" {
		binary = "ffmpeg"
	}
	out, err := exec.CommandContext(ctx, binary, "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	return pickEncoder(string(out))
}

func pickEncoder(listing string) string {
	// VideoToolbox first, then NVENC
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(listing, name) {
			return name
		}
	}
	return "libx264"
}
