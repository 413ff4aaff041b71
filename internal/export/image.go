package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF for DecodeConfig
	_ "image/jpeg"
	"image/png"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/HerbHall/slidecraft/pkg/models"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // register BMP for Decode
	_ "golang.org/x/image/webp" // register WebP for Decode
)

// ErrUnsupportedImage is returned for bytes that are not an embeddable image.
var ErrUnsupportedImage = errors.New("unsupported image format")

// Image is a decoded-and-verified picture ready for embedding.
type Image struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// ErrBlockedAddress is returned when a remote image resolves to a loopback,
// private, link-local or otherwise non-public address.
var ErrBlockedAddress = errors.New("image host address not allowed")

// ImageLoader turns slide image references into embeddable images.
type ImageLoader struct {
	httpClient *http.Client
	maxBytes   int64
}

// LoaderOption configures an ImageLoader.
type LoaderOption func(*ImageLoader)

// WithPublicAddressesOnly refuses to connect to non-public addresses. The
// check runs on every dialed address after DNS resolution, so redirects and
// rebinding names are covered too.
func WithPublicAddressesOnly() LoaderOption {
	return func(l *ImageLoader) {
		dialer := &net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
			Control:   publicAddressControl,
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = nil
		transport.DialContext = dialer.DialContext
		l.httpClient.Transport = transport
	}
}

// NewImageLoader creates a loader whose remote fetches are bounded by
// timeout and maxBytes.
func NewImageLoader(timeout time.Duration, maxBytes int64, opts ...LoaderOption) *ImageLoader {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	l := &ImageLoader{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Carrier-grade NAT space is not flagged by netip.Addr.IsPrivate.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

func publicAddressControl(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	if !isPublicAddr(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, ip)
	}
	return nil
}

func isPublicAddr(ip netip.Addr) bool {
	ip = ip.Unmap()
	switch {
	case ip.IsLoopback(), ip.IsPrivate(), ip.IsUnspecified(),
		ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(), ip.IsMulticast():
		return false
	case sharedAddressSpace.Contains(ip):
		return false
	}
	return ip.IsValid()
}

// Load resolves ref, a data URI or a URL with any "image: " marker already
// removed, and verifies the result decodes.
func (l *ImageLoader) Load(ctx context.Context, ref string) (*Image, error) {
	var (
		data []byte
		err  error
	)
	switch models.ClassifyImage(ref) {
	case models.ImageEmbedded:
		data, err = decodeDataURI(ref)
	case models.ImageRemote:
		data, err = l.fetch(ctx, ref)
	default:
		return nil, fmt.Errorf("empty image reference")
	}
	if err != nil {
		return nil, err
	}
	return normalizeImage(data)
}

func (l *ImageLoader) fetch(ctx context.Context, ref string) ([]byte, error) {
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("unsupported image url %q", ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", l.maxBytes)
	}
	return data, nil
}

// decodeDataURI extracts the payload of a data: URI.
func decodeDataURI(ref string) ([]byte, error) {
	meta, payload, ok := strings.Cut(ref[len("data:"):], ",")
	if !ok {
		return nil, fmt.Errorf("malformed data uri")
	}
	if !strings.HasSuffix(strings.ToLower(meta), ";base64") {
		data, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("unescape data uri: %w", err)
		}
		return []byte(data), nil
	}

	payload = strings.TrimSpace(payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some producers drop the padding.
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("decode data uri: %w", err)
		}
	}
	return data, nil
}

// normalizeImage sniffs the content type, rejects anything that does not
// decode, and transcodes formats presentation viewers handle poorly to PNG.
func normalizeImage(data []byte) (*Image, error) {
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("image/png"), mt.Is("image/jpeg"), mt.Is("image/gif"):
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", mt.String(), err)
		}
		return &Image{Data: data, MIME: mt.String(), Width: cfg.Width, Height: cfg.Height}, nil

	case mt.Is("image/webp"), mt.Is("image/bmp"):
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", mt.String(), err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("transcode %s to png: %w", mt.String(), err)
		}
		b := img.Bounds()
		return &Image{Data: buf.Bytes(), MIME: "image/png", Width: b.Dx(), Height: b.Dy()}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
	}
}
