package gdraw

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"clickchess/src/base"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/pieces/*.svg
var pieceFiles embed.FS

type pieceCacheKey struct {
	piece base.Piece
	size  int
}

// pieceCache keeps rasterized sprites per piece and square size.
type pieceCache struct {
	mu     sync.RWMutex
	images map[pieceCacheKey]*image.RGBA
}

func newPieceCache() *pieceCache {
	return &pieceCache{images: make(map[pieceCacheKey]*image.RGBA)}
}

func (pc *pieceCache) get(piece base.Piece, size int) (*image.RGBA, error) {
	key := pieceCacheKey{piece: piece, size: size}

	pc.mu.RLock()
	if img, ok := pc.images[key]; ok {
		pc.mu.RUnlock()
		return img, nil
	}
	pc.mu.RUnlock()

	img, err := renderPieceImage(piece, size)
	if err != nil {
		return nil, err
	}

	pc.mu.Lock()
	pc.images[key] = img
	pc.mu.Unlock()
	return img, nil
}

func (pc *pieceCache) len() int {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return len(pc.images)
}

func renderPieceImage(piece base.Piece, size int) (*image.RGBA, error) {
	name, err := pieceAssetName(piece)
	if err != nil {
		return nil, err
	}
	data, err := pieceFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read piece asset %s: %w", name, err)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg %s: %w", name, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

func pieceAssetName(piece base.Piece) (string, error) {
	var prefix string
	switch piece.Owner {
	case base.White:
		prefix = "w"
	case base.Black:
		prefix = "b"
	default:
		return "", fmt.Errorf("piece %v has no owner", piece)
	}

	var suffix string
	switch piece.Kind {
	case base.King:
		suffix = "K"
	case base.Queen:
		suffix = "Q"
	case base.Rook:
		suffix = "R"
	case base.Bishop:
		suffix = "B"
	case base.Knight:
		suffix = "N"
	case base.Pawn:
		suffix = "P"
	default:
		return "", fmt.Errorf("piece %v has no sprite", piece)
	}

	return fmt.Sprintf("assets/pieces/%s%s.svg", prefix, suffix), nil
}
