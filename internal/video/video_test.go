package video

import (
	"bytes"
	"image"
	"image/color"
	"slices"
	"testing"
)

func TestBuildFFmpegArgs(t *testing.T) {
	tests := []struct {
		codec    string
		expected []string
	}{
		{"", []string{"-c:v", "libx264", "-crf", "23", "-preset", "medium"}},
		{"h264_nvenc", []string{"-c:v", "h264_nvenc", "-cq", "23"}},
		{"h264_videotoolbox", []string{"-c:v", "h264_videotoolbox", "-b:v", "2300k"}},
	}

	for _, tt := range tests {
		args := buildFFmpegArgs(Params{Width: 1280, Height: 720, FPS: 30, Output: "out.mp4", Codec: tt.codec, Quality: 23})
		if args[len(args)-1] != "out.mp4" {
			t.Errorf("Output must be the last argument, got %v", args)
		}
		i := slices.Index(args, "-c:v")
		if i < 0 || !slices.Equal(args[i:i+len(tt.expected)], tt.expected) {
			t.Errorf("Codec %q: expected %v in %v", tt.codec, tt.expected, args)
		}
		if !slices.Contains(args, "1280x720") || !slices.Contains(args, "rgba") {
			t.Errorf("Input format missing from %v", args)
		}
	}
}

func TestWriteRawRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 12, 11))
	img.Set(10, 10, color.NRGBA{R: 255, A: 255})
	img.Set(11, 10, color.NRGBA{G: 255, A: 255})

	var buf bytes.Buffer
	if err := writeRawRGBA(&buf, img); err != nil {
		t.Fatalf("writeRawRGBA failed: %v", err)
	}
	expected := []byte{255, 0, 0, 255, 0, 255, 0, 255}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("Expected %v, got %v", expected, buf.Bytes())
	}
}

func TestPickEncoder(t *testing.T) {
	if got := pickEncoder(" V....D h264_nvenc  NVIDIA NVENC H.264 encoder"); got != "h264_nvenc" {
		t.Errorf("Expected h264_nvenc, got %s", got)
	}
	if got := pickEncoder(" V....D libx264"); got != "libx264" {
		t.Errorf("Expected libx264 fallback, got %s", got)
	}
}
