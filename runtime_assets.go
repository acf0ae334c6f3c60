package loginform

import (
	"io/fs"

	"github.com/goliatone/go-loginform/pkg/page"
)

// AssetsFS exposes the login page stylesheet so Go applications can serve it
// next to the rendered page.
//
// Typical mount:
//
//	router.PathPrefix("/assets/").Handler(
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(loginform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return page.AssetsFS()
}
