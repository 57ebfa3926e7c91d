package gridtransmit

import (
	"encoding/hex"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/gridtransmit/bitmap"
	"github.com/bodgit/gridtransmit/frame"
	"github.com/zeebo/blake3"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
)

var imageExtensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
}

func isImage(file string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(file))]
	return ok
}

// Decode the image in file, hashing every byte of the file as it goes
func decodeFile(file string) (image.Image, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := blake3.New()
	r := io.TeeReader(f, h)

	m, _, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}

	// Decoders don't necessarily read to the end
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, "", err
	}

	return m, hex.EncodeToString(h.Sum(nil)), nil
}

// DigestFile returns the hex encoded BLAKE3 digest of file.
func DigestFile(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// EncodeFile reads the image in file and encodes it with the given cell
// size.
func EncodeFile(file string, size int) (*frame.Frame, error) {
	m, _, err := decodeFile(file)
	if err != nil {
		return nil, err
	}
	return frame.New(bitmap.FromImage(m), size)
}
