package render

import qrcode "github.com/skip2/go-qrcode"

type QRGenerator struct {
	size int
}

func NewQRGenerator() *QRGenerator {
	return &QRGenerator{size: 256}
}

func (g *QRGenerator) RenderPNG(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, g.size)
}
