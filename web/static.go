package web

import "embed"

// StaticFS 内嵌的前端页面
//
//go:embed index.html
var StaticFS embed.FS
