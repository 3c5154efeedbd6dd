package domain

// Upload is a file picked in a form, held in memory until submit.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Draft is unsaved form state, kept apart from any fetched record.
type Draft struct {
	Fields map[string]string
	File   *Upload
}

func (d Draft) Get(field string) string { return d.Fields[field] }

func (d Draft) IsEmpty() bool { return len(d.Fields) == 0 && d.File == nil }

func (d Draft) Clone() Draft {
	out := Draft{File: d.File}
	if d.Fields != nil {
		out.Fields = make(map[string]string, len(d.Fields))
		for k, v := range d.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

func (c Category) Draft() Draft {
	return Draft{Fields: map[string]string{"name": c.Name}}
}

// Draft pre-fills the pizza form. The image is never pre-filled: an empty
// file field on update keeps the stored image.
func (p Pizza) Draft() Draft {
	return Draft{Fields: map[string]string{
		"name":        p.Name,
		"price":       p.PriceString(),
		"description": p.Description,
		"categoryId":  p.CategoryID,
	}}
}
