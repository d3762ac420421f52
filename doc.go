/*

Package vanityserve serves "vanity" Go import paths, telling the go tool where
the version control repositories of modules live, and sending human visitors
to the module documentation instead. And all this for any number of modules
from a single, static module table.

The Handler type implements http.Handler: for request paths matching (a
package inside) a module in its Table, the Handler serves the go-import and
optional go-source meta tags when asked by the go tool via "?go-get=1".
Otherwise, it redirects to the module's homepage or, lacking a homepage,
serves a small landing page. Nested packages resolve to the module with the
longest matching import path.

Module tables are usually loaded from JSON, YAML, or TOML files using
LoadTable, which accepts any fs.FS implementation:

	table, err := vanityserve.LoadTable(os.DirFS("/etc/vanityserve"), "modules.yaml")
	if err != nil {
		log.Fatal(err)
	}
	http.Handle("/", vanityserve.NewHandler(table))

*/
package vanityserve
