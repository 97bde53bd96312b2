package pdf

import (
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/mikawi/g2scv/internal/models"
)

// linkAnnotations walks every page's Annots array and returns the Link
// annotations with a URI action, keyed by 1-based page number. The Rect
// entry, when present and well formed, becomes the link's bounding box.
func linkAnnotations(path string) (map[int][]models.Link, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, err
	}

	links := make(map[int][]models.Link)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageDict, _, _, err := ctx.PageDict(pageNr, false)
		if err != nil || pageDict == nil {
			continue
		}
		obj, found := pageDict.Find("Annots")
		if !found {
			continue
		}
		annots, err := ctx.DereferenceArray(obj)
		if err != nil {
			continue
		}
		for _, a := range annots {
			annot, err := ctx.DereferenceDict(a)
			if err != nil {
				continue
			}
			if subtype := annot.NameEntry("Subtype"); subtype == nil || *subtype != "Link" {
				continue
			}
			uri := linkURI(ctx, annot)
			if uri == "" {
				continue
			}
			links[pageNr] = append(links[pageNr], models.Link{
				URL:         uri,
				Page:        pageNr,
				Coordinates: linkRect(ctx, annot),
			})
		}
	}
	return links, nil
}

func linkURI(ctx *model.Context, annot types.Dict) string {
	obj, found := annot.Find("A")
	if !found {
		return ""
	}
	action, err := ctx.DereferenceDict(obj)
	if err != nil {
		return ""
	}
	if s := action.StringEntry("URI"); s != nil {
		return *s
	}
	return ""
}

func linkRect(ctx *model.Context, annot types.Dict) []float64 {
	obj, found := annot.Find("Rect")
	if !found {
		return nil
	}
	arr, err := ctx.DereferenceArray(obj)
	if err != nil || len(arr) != 4 {
		return nil
	}
	rect := make([]float64, 0, 4)
	for _, el := range arr {
		n, ok := numberValue(ctx, el)
		if !ok {
			return nil
		}
		rect = append(rect, n)
	}
	return rect
}

func numberValue(ctx *model.Context, obj types.Object) (float64, bool) {
	o, err := ctx.Dereference(obj)
	if err != nil {
		return 0, false
	}
	switch v := o.(type) {
	case types.Integer:
		return float64(v), true
	case types.Float:
		return float64(v), true
	}
	return 0, false
}
