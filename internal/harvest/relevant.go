package harvest

import (
	"net/url"
	"path"
	"strings"
)

var securityExtensions = map[string]struct{}{
	".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {},
	".json": {}, ".xml": {}, ".yaml": {}, ".yml": {},
	".txt": {}, ".md": {}, ".env": {}, ".config": {},
	".php": {}, ".py": {}, ".rb": {}, ".java": {}, ".go": {}, ".cs": {},
	".sql": {}, ".db": {},
	".pem": {}, ".key": {}, ".crt": {}, ".p12": {},
	".properties": {}, ".ini": {}, ".conf": {},
}

var securityFilenames = map[string]struct{}{
	"robots.txt": {}, "sitemap.xml": {}, "crossdomain.xml": {},
	"security.txt": {}, ".htaccess": {}, "web.config": {},
	"package.json": {}, "composer.json": {}, "requirements.txt": {},
	"dockerfile": {}, "docker-compose.yml": {},
}

// Relevant reports whether a linked resource is worth downloading for a
// security scan, by extension or well-known filename.
func Relevant(urlOrPath string) bool {
	u, err := url.Parse(urlOrPath)
	if err != nil {
		return false
	}
	p := strings.ToLower(u.Path)
	if _, ok := securityExtensions[path.Ext(p)]; ok {
		return true
	}
	_, ok := securityFilenames[path.Base(p)]
	return ok
}
