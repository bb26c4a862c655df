// Package assets loads fonts and textures off the frame goroutine.
//
// Requests return immediately. Results arrive on buffered channels and are
// collected with Poll from the tick, so callers never block on I/O.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// ErrUnknownFont is returned for font names that are not registered.
var ErrUnknownFont = errors.New("unknown font")

// DefaultFont is the face used for marker labels and the list overlay.
const DefaultFont = "proggy"

// FontResult is the outcome of a RequestFont call. Key echoes the caller's
// request key.
type FontResult struct {
	Key  string
	Name string
	Face tinyfont.Fonter
	Err  error
}

// TextureResult is the outcome of a RequestTexture call.
type TextureResult struct {
	Path  string
	Image image.Image
	Err   error
}

// Results is what Poll drains in one call.
type Results struct {
	Fonts    []FontResult
	Textures []TextureResult
}

// Loader resolves asset requests concurrently.
type Loader struct {
	fs  afero.Fs
	log zerolog.Logger

	mu    sync.RWMutex
	faces map[string]tinyfont.Fonter

	fonts    chan FontResult
	textures chan TextureResult
	wg       sync.WaitGroup
}

// NewLoader reads textures from fsys. A nil fsys means the OS filesystem.
func NewLoader(fsys afero.Fs, log zerolog.Logger) *Loader {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Loader{
		fs:  fsys,
		log: log.With().Str("component", "assets").Logger(),
		faces: map[string]tinyfont.Fonter{
			"proggy":   &proggy.TinySZ8pt7b,
			"tomthumb": &tinyfont.TomThumb,
		},
		fonts:    make(chan FontResult, 32),
		textures: make(chan TextureResult, 4),
	}
}

// Register makes face available under name, replacing any previous face.
func (l *Loader) Register(name string, face tinyfont.Fonter) {
	l.mu.Lock()
	l.faces[strings.ToLower(name)] = face
	l.mu.Unlock()
}

// RequestFont resolves a font face by name in the background.
func (l *Loader) RequestFont(key, name string) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		face, err := l.face(name)
		l.fonts <- FontResult{Key: key, Name: name, Face: face, Err: err}
	}()
}

func (l *Loader) face(name string) (tinyfont.Fonter, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	face, ok := l.faces[strings.ToLower(name)]
	if !ok || face == nil {
		return nil, fmt.Errorf("font %q: %w", name, ErrUnknownFont)
	}
	return face, nil
}

// RequestTexture decodes a PNG or JPEG image in the background.
func (l *Loader) RequestTexture(path string) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := l.decode(path)
		l.textures <- TextureResult{Path: path, Image: img, Err: err}
	}()
}

func (l *Loader) decode(path string) (image.Image, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	l.log.Debug().Str("path", path).Str("format", format).
		Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).
		Msg("texture decoded")
	return img, nil
}

// Poll collects every result that is ready without blocking.
func (l *Loader) Poll() Results {
	var r Results
	for {
		select {
		case f := <-l.fonts:
			r.Fonts = append(r.Fonts, f)
		case t := <-l.textures:
			r.Textures = append(r.Textures, t)
		default:
			return r
		}
	}
}

// Wait blocks until every outstanding request has delivered its result.
// Results stay queued for the next Poll, so more pending requests than the
// queue holds (32 fonts, 4 textures) must be drained with Poll instead.
func (l *Loader) Wait() {
	l.wg.Wait()
}
