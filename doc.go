/*
Package iconview is an icon catalogue engine. It loads vector and bitmap icon
collections, lets the caller recolour, restroke and filter them, and renders
the entries into square images on demand, caching the results.

The command line interface lists, renders and exports icons of the
collections found under a root directory. To check the supported commands type:

	$ iconview --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"image/png"
		"os"

		"github.com/esimov/iconview"
	)

	func main() {
		src := iconview.NewVectorList("demo", 24, []iconview.VectorIcon{
			{Name: "dot", Markup: `<svg viewBox="0 0 24 24"><circle cx="12" cy="12" r="6" fill="currentColor"/></svg>`},
		})

		m := iconview.NewModel()
		m.SetIconSource(src)
		m.SetSize(64)

		if img := m.RenderedImage(0); img != nil {
			png.Encode(os.Stdout, img)
		}
	}
*/
package iconview
