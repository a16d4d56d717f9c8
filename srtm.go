package elevroute

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// NoDataElevation is the SRTM sentinel value meaning "no data" for a
// sample.
const NoDataElevation int16 = -32768

// DefaultSrtmBaseURL is the USGS SRTM3 mirror the original implementation
// downloaded tiles from.
const DefaultSrtmBaseURL = "https://dds.cr.usgs.gov/srtm/version2_1/SRTM3/Eurasia"

// SrtmTile is a square raster of signed 16-bit big-endian elevation
// samples covering a 1x1 degree patch, keyed by its south-west corner.
type SrtmTile struct {
	SWLat int
	SWLon int
	Side  int
	data  []byte
}

// newSrtmTile wraps raw .hgt bytes, deriving the raster side from the file
// size (side = sqrt(bytes/2); 1201 for 3-arc-second tiles).
func newSrtmTile(swLat, swLon int, data []byte) (*SrtmTile, error) {
	samples := len(data) / 2
	side := int(math.Round(math.Sqrt(float64(samples))))
	if side*side*2 != len(data) {
		return nil, fmt.Errorf("%w: srtm tile has %d bytes, not a square raster", ErrMalformedInput, len(data))
	}
	return &SrtmTile{SWLat: swLat, SWLon: swLon, Side: side, data: data}, nil
}

// sample reads the raw elevation at (row, col), row 0 being the north
// edge. Returns ok=false when out of bounds.
func (t *SrtmTile) sample(row, col int) (int16, bool) {
	if row < 0 || row >= t.Side || col < 0 || col >= t.Side {
		return 0, false
	}
	offset := 2 * (row*t.Side + col)
	return int16(binary.BigEndian.Uint16(t.data[offset : offset+2])), true
}

// rowColFor converts a coordinate inside this tile to raster row/column
// (spec.md §4.1).
func (t *SrtmTile) rowColFor(lat, lon float64) (row, col int) {
	s := float64(t.Side - 1)
	row = int(math.Floor((float64(t.SWLat) + 1 - lat) * s))
	col = int(math.Floor((lon - float64(t.SWLon)) * s))
	return row, col
}

// SrtmTileStore is a lazy-loaded, keyed cache of SrtmTile rasters. Tiles
// are fetched from CacheDir on disk, falling back to an HTTPS download
// (retried with exponential backoff) that is unzipped and persisted for
// next time. SrtmTileStore is used only during preprocessing; it holds no
// relevance at query time (spec.md §9).
type SrtmTileStore struct {
	CacheDir string
	BaseURL  string
	Client   *http.Client

	// CarryForward toggles the no-data fallback policy of spec.md §4.2
	// pass 2: when true, a tile miss or no-data sample reuses the last
	// successfully resolved elevation rather than surfacing TileUnavailable.
	CarryForward bool

	tiles map[string]*SrtmTile
	last  float64
	haveLast bool
}

// NewSrtmTileStore returns a store that caches downloaded tiles under
// cacheDir and fetches missing ones from baseURL (DefaultSrtmBaseURL when
// empty).
func NewSrtmTileStore(cacheDir, baseURL string) *SrtmTileStore {
	if baseURL == "" {
		baseURL = DefaultSrtmBaseURL
	}
	return &SrtmTileStore{
		CacheDir:     cacheDir,
		BaseURL:      baseURL,
		Client:       &http.Client{Timeout: 60 * time.Second},
		CarryForward: true,
		tiles:        make(map[string]*SrtmTile),
	}
}

// tileKey formats the USGS-style tile name for a coordinate's containing
// 1x1 degree patch: <N|S><lat:02><E|W><lon:03> using the floor of the
// signed coordinate (spec.md §4.1, testable property 1).
func tileKey(lat, lon float64) string {
	swLat := int(math.Floor(lat))
	swLon := int(math.Floor(lon))
	ns := "N"
	absLat := swLat
	if swLat < 0 {
		ns = "S"
		absLat = -swLat
	}
	ew := "E"
	absLon := swLon
	if swLon < 0 {
		ew = "W"
		absLon = -swLon
	}
	return fmt.Sprintf("%s%02d%s%03d", ns, absLat, ew, absLon)
}

// Elevation resolves the elevation in meters at (lat, lon). When
// interpolate is true it blends the four axis-adjacent samples with the
// central sample, weighting each by the inverse of its distance in
// degrees to the query point (spec.md §4.1). ok is false only when no
// elevation could be resolved at all (no data and no carry-forward value
// yet available).
func (s *SrtmTileStore) Elevation(ctx context.Context, lat, lon float64, interpolate bool) (float64, bool) {
	tile, err := s.tile(ctx, lat, lon)
	if err != nil {
		log.Printf("srtm: %v", err)
		return s.fallback()
	}

	row, col := tile.rowColFor(lat, lon)

	if !interpolate {
		central, ok := tile.sample(row, col)
		if !ok || central == NoDataElevation {
			return s.fallback()
		}
		s.remember(float64(central))
		return float64(central), true
	}

	value, resolved := s.interpolate(tile, lat, lon, row, col)
	if !resolved {
		return s.fallback()
	}
	s.remember(value)
	return value, true
}

// interpolate implements the 5-point inverse-distance blend of spec.md
// §4.1: the central sample plus its four axis-adjacent neighbors, each
// weighted by the reciprocal of its euclidean distance in degrees to the
// query point. A sample is skipped — central included — when it falls
// outside the tile or carries the no-data sentinel, so a void at the
// query point's own pixel still interpolates from valid neighbors rather
// than failing outright. resolved is false only when every one of the
// five samples was unusable.
func (s *SrtmTileStore) interpolate(tile *SrtmTile, lat, lon float64, row, col int) (value float64, resolved bool) {
	step := 1.0 / float64(tile.Side-1)

	weighted := 0.0
	weightSum := 0.0
	add := func(sampleRow, sampleCol int) {
		v, ok := tile.sample(sampleRow, sampleCol)
		if !ok || v == NoDataElevation {
			return
		}
		sampleLat := float64(tile.SWLat) + 1 - float64(sampleRow)*step
		sampleLon := float64(tile.SWLon) + float64(sampleCol)*step
		dist := math.Hypot(lat-sampleLat, lon-sampleLon)
		if dist == 0 {
			weighted += float64(v) * 1e9
			weightSum += 1e9
			return
		}
		weight := 1.0 / dist
		weighted += float64(v) * weight
		weightSum += weight
	}

	add(row, col)
	add(row-1, col)
	add(row+1, col)
	add(row, col-1)
	add(row, col+1)

	if weightSum == 0 {
		return 0, false
	}
	return weighted / weightSum, true
}

// fallback applies the carry-forward policy when a tile or sample is
// unavailable.
func (s *SrtmTileStore) fallback() (float64, bool) {
	if s.CarryForward && s.haveLast {
		return s.last, true
	}
	return 0, false
}

func (s *SrtmTileStore) remember(v float64) {
	s.last = v
	s.haveLast = true
}

// tile returns the cached or freshly loaded tile covering (lat, lon).
func (s *SrtmTileStore) tile(ctx context.Context, lat, lon float64) (*SrtmTile, error) {
	key := tileKey(lat, lon)
	if t, ok := s.tiles[key]; ok {
		return t, nil
	}

	data, err := s.loadOrFetch(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: tile %s: %v", ErrTileUnavailable, key, err)
	}
	swLat := int(math.Floor(lat))
	swLon := int(math.Floor(lon))
	tile, err := newSrtmTile(swLat, swLon, data)
	if err != nil {
		return nil, err
	}
	s.tiles[key] = tile
	return tile, nil
}

func (s *SrtmTileStore) cachePath(key string) string {
	return filepath.Join(s.CacheDir, key+".hgt")
}

// loadOrFetch reads a tile's raw bytes from the local cache, downloading
// and persisting it first when absent.
func (s *SrtmTileStore) loadOrFetch(ctx context.Context, key string) ([]byte, error) {
	path := s.cachePath(key)
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	}

	data, err := s.download(ctx, key)
	if err != nil {
		return nil, err
	}
	if s.CacheDir != "" {
		if err := os.MkdirAll(s.CacheDir, 0o755); err == nil {
			_ = os.WriteFile(path, data, 0o644)
		}
	}
	return data, nil
}

// download fetches and unzips a tile over HTTPS, retrying transient
// failures with exponential backoff (spec.md §5: "tile downloads ... must
// be retried with exponential backoff on transient failure").
func (s *SrtmTileStore) download(ctx context.Context, key string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s.hgt.zip", s.BaseURL, key)
	log.Printf("srtm: downloading %s", url)

	op := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		resp, err := s.Client.Do(req)
		if err != nil {
			return nil, err // network error: retryable
		}
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, backoff.Permanent(fmt.Errorf("tile %s not found upstream", key))
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return unzipSingleFile(body)
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(5),
	)
}

// unzipSingleFile extracts the single .hgt member expected inside a
// downloaded SRTM zip archive.
func unzipSingleFile(zipBytes []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, fmt.Errorf("srtm zip archive is empty")
	}
	f, err := r.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
