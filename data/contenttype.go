package data

import (
	"path/filepath"
	"strings"
)

type ContentType string

const (
	ContentTypeTextPlain         ContentType = "text/plain"
	ContentTypeTextHTML          ContentType = "text/html"
	ContentTypeTextCSS           ContentType = "text/css"
	ContentTypeTextJavaScript    ContentType = "text/javascript"
	ContentTypeImageJPEG         ContentType = "image/jpeg"
	ContentTypeImagePNG          ContentType = "image/png"
	ContentTypeImageGIF          ContentType = "image/gif"
	ContentTypeImageWebP         ContentType = "image/webp"
	ContentTypeImageSVGXML       ContentType = "image/svg+xml"
	ContentTypeImageXIcon        ContentType = "image/x-icon"
	ContentTypeFontWOFF2         ContentType = "font/woff2"
	ContentTypeApplicationJson   ContentType = "application/json"
	ContentTypeApplicationXML    ContentType = "application/xml"
	ContentTypeApplicationPDF    ContentType = "application/pdf"
	ContentTypeApplicationWasm   ContentType = "application/wasm"
	ContentTypeApplicationStream ContentType = "application/octet-stream"
)

// ExtensionToMIME maps file extensions to MIME types.
var ExtensionToMIME = map[string]ContentType{
	".txt":   ContentTypeTextPlain,
	".html":  ContentTypeTextHTML,
	".htm":   ContentTypeTextHTML,
	".css":   ContentTypeTextCSS,
	".js":    ContentTypeTextJavaScript,
	".mjs":   ContentTypeTextJavaScript,
	".jpg":   ContentTypeImageJPEG,
	".jpeg":  ContentTypeImageJPEG,
	".png":   ContentTypeImagePNG,
	".gif":   ContentTypeImageGIF,
	".webp":  ContentTypeImageWebP,
	".svg":   ContentTypeImageSVGXML,
	".ico":   ContentTypeImageXIcon,
	".woff2": ContentTypeFontWOFF2,
	".json":  ContentTypeApplicationJson,
	".xml":   ContentTypeApplicationXML,
	".pdf":   ContentTypeApplicationPDF,
	".wasm":  ContentTypeApplicationWasm,
}

// GetMIMEType returns the MIME type for a file path based on its extension.
func GetMIMEType(path string) ContentType {
	ext := strings.ToLower(filepath.Ext(path))

	if mimeType, exists := ExtensionToMIME[ext]; exists {
		return mimeType
	}

	// Default to octet-stream for unknown types
	return ContentTypeApplicationStream
}
