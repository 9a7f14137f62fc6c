package gomal

import (
	"embed"
	"net/http"
	"os"
	"path"

	"github.com/rakyll/statik/fs"
)

//go:embed lib/*.mal
var libFiles embed.FS

// LoadLib evaluates the bundled Lisp library into env, one file at a time
// in name order.
func LoadLib(env *Env) error {
	return LoadFS(env, http.FS(libFiles), "/lib")
}

// LoadFS evaluates every .mal file under root in hfs into env.
func LoadFS(env *Env, hfs http.FileSystem, root string) error {
	return fs.Walk(hfs, root, func(name string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() || path.Ext(name) != ".mal" {
			return nil
		}
		b, err := fs.ReadFile(hfs, name)
		if err != nil {
			return err
		}
		forms, err := Read(string(b))
		if err != nil {
			return err
		}
		_, err = env.Eval(forms...)
		return err
	})
}
