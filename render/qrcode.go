package render

import (
	"image"
	"sync"

	"github.com/skip2/go-qrcode"
)

const (
	defaultQRCodeSizePx = 256
	maxCachedQRCodes    = 16
)

// GenerateQRCodeImage returns a borderless QR code image for payload.
// If payload is empty, it returns (nil, nil).
func GenerateQRCodeImage(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qrCode.DisableBorder = true

	return qrCode.Image(sizePx), nil
}

type qrKey struct {
	payload string
	sizePx  int
}

// QRCodeCache memoizes generated codes by payload and size.
type QRCodeCache struct {
	mu     sync.Mutex
	images map[qrKey]image.Image
}

// Image returns the cached code for payload, generating it on first use.
// The cache is dropped wholesale once it holds maxCachedQRCodes entries.
func (cache *QRCodeCache) Image(payload string, sizePx int) (image.Image, error) {
	key := qrKey{payload: payload, sizePx: sizePx}
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if img, ok := cache.images[key]; ok {
		return img, nil
	}
	img, err := GenerateQRCodeImage(payload, sizePx)
	if err != nil || img == nil {
		return nil, err
	}
	if cache.images == nil || len(cache.images) >= maxCachedQRCodes {
		cache.images = make(map[qrKey]image.Image)
	}
	cache.images[key] = img
	return img, nil
}
