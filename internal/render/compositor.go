package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

// Fixed layout of the composited status image. Pixel values are load-bearing:
// the background and overlay art are drawn for exactly this geometry.
const (
	CanvasWidth  = 1280
	CanvasHeight = 720

	StageX      = 62
	StageY      = 207
	StageWidth  = 800
	StageHeight = 450

	WeaponSize     = 153
	MaxWeaponSlots = 4

	LabelX        = 700
	LabelY        = 635
	LabelFontSize = 40
)

// WeaponSlots are the four fixed icon positions, filled in feed order.
// Fewer weapons leave the trailing slots empty; there is no reflow.
var WeaponSlots = [MaxWeaponSlots]image.Point{
	{X: 896, Y: 224},
	{X: 1095, Y: 224},
	{X: 896, Y: 430},
	{X: 1095, Y: 430},
}

// bossBackgrounds maps a boss id (base64 "CoopEnemy-NN" tokens from the
// feed) to its background art. Unknown ids use defaultBackground.
var bossBackgrounds = map[string]string{
	"Q29vcEVuZW15LTIz": "kingbig.png",
	"Q29vcEVuZW15LTI0": "kingyong.png",
	"Q29vcEVuZW15LTI1": "kingjoe.png",
	"Q29vcEVuZW15LTMw": "kingtri.png",
}

const (
	defaultBackground = "kingdefault.png"
	overlayFile       = "sroverlay.png"
	fontFile          = "fonts/splatoonfont.ttf"
	outputFile        = "finalImage.png"
)

// Spec is the fully-resolved input to one render: which background to use,
// where the downloaded images live and what label to draw.
type Spec struct {
	BackgroundKey    string
	StageImagePath   string
	WeaponImagePaths []string
	LabelText        string
}

// AssetError reports a missing or undecodable input file.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("loading asset %s: %v", e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// EncodeError reports a failure encoding or persisting the output PNG.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding rendered image: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Compositor renders the fixed-layout rotation image. Rendering is
// deterministic: identical spec and input bytes produce identical output.
type Compositor struct {
	assetDir           string
	backgroundOverride string
	log                *zap.Logger
}

// NewCompositor creates a compositor reading static art from assetDir.
// A non-empty backgroundOverride names an asset file that replaces the
// boss-keyed background for every render.
func NewCompositor(assetDir, backgroundOverride string, log *zap.Logger) *Compositor {
	return &Compositor{
		assetDir:           assetDir,
		backgroundOverride: backgroundOverride,
		log:                log,
	}
}

// OutputPath is the fixed location of the composed image.
func (c *Compositor) OutputPath() string {
	return filepath.Join(c.assetDir, outputFile)
}

// Render composes the status image and returns its path. The image is
// written to a temporary file and renamed into place so a reader never
// observes a half-written file.
func (c *Compositor) Render(spec Spec) (string, error) {
	dc := gg.NewContext(CanvasWidth, CanvasHeight)

	background, err := loadImage(c.backgroundPath(spec.BackgroundKey))
	if err != nil {
		return "", err
	}
	dc.DrawImage(imaging.Resize(background, CanvasWidth, CanvasHeight, imaging.Lanczos), 0, 0)

	stage, err := loadImage(spec.StageImagePath)
	if err != nil {
		return "", err
	}
	dc.DrawImage(imaging.Resize(stage, StageWidth, StageHeight, imaging.Lanczos), StageX, StageY)

	overlay, err := loadImage(filepath.Join(c.assetDir, overlayFile))
	if err != nil {
		return "", err
	}
	dc.DrawImage(imaging.Resize(overlay, CanvasWidth, CanvasHeight, imaging.Lanczos), 0, 0)

	for i, path := range spec.WeaponImagePaths {
		if i >= MaxWeaponSlots {
			break
		}
		weapon, err := loadImage(path)
		if err != nil {
			return "", err
		}
		slot := WeaponSlots[i]
		dc.DrawImage(imaging.Resize(weapon, WeaponSize, WeaponSize, imaging.Lanczos), slot.X, slot.Y)
	}

	fontPath := filepath.Join(c.assetDir, fontFile)
	if err := dc.LoadFontFace(fontPath, LabelFontSize); err != nil {
		return "", &AssetError{Path: fontPath, Err: err}
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(spec.LabelText, LabelX, LabelY, 0.5, 0.5)

	out := c.OutputPath()
	if err := writeAtomic(out, dc.Image()); err != nil {
		return "", err
	}

	c.log.Debug("image rendered", zap.String("path", out), zap.String("label", spec.LabelText))
	return out, nil
}

func (c *Compositor) backgroundPath(key string) string {
	if c.backgroundOverride != "" {
		return filepath.Join(c.assetDir, c.backgroundOverride)
	}
	name, ok := bossBackgrounds[key]
	if !ok {
		name = defaultBackground
	}
	return filepath.Join(c.assetDir, name)
}

func loadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	return img, nil
}

// writeAtomic encodes img as PNG into a temp file in the target directory,
// flushes it, then renames it over path.
func writeAtomic(path string, img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".render-*.png")
	if err != nil {
		return &EncodeError{Err: err}
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return &EncodeError{Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &EncodeError{Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &EncodeError{Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &EncodeError{Err: err}
	}
	return nil
}
