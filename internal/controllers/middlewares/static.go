package middlewares

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

const indexFile = "index.html"

// StaticMiddleware отдает файлы из dir для GET и HEAD запросов. Если файла нет,
// запрос уходит дальше по цепочке, поэтому файл перекрывает одноименный короткий код.
// Каталог отдается только при наличии index.html.
func StaticMiddleware(dir string) gin.HandlerFunc {
	fileSystem := gin.Dir(dir, false)

	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet && ctx.Request.Method != http.MethodHead {
			ctx.Next()
			return
		}

		name := path.Clean("/" + ctx.Request.URL.Path)
		if !hasFile(fileSystem, name) {
			ctx.Next()
			return
		}

		ctx.FileFromFS(name, fileSystem)
		ctx.Abort()
	}
}

// hasFile проверяет что name это файл или каталог с index.html.
func hasFile(fileSystem http.FileSystem, name string) bool {
	f, err := fileSystem.Open(name)
	if err != nil {
		return false
	}
	stat, err := f.Stat()
	_ = f.Close()
	if err != nil {
		return false
	}
	if !stat.IsDir() {
		return true
	}
	return hasFile(fileSystem, path.Join(name, indexFile))
}
