package e2etest

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

const fieldSelector = "input,select,textarea"

// FindFieldForLabel returns the input, select or textarea labelled labelText in form. The label either points to
// the field with its for attribute or wraps it.
func FindFieldForLabel(form *goquery.Selection, labelText string) (*goquery.Selection, error) {
	label := form.Find(fmt.Sprintf("label:contains('%s')", labelText)).First()
	if label.Length() == 0 {
		return nil, fmt.Errorf("label not found: %s", labelText)
	}

	field := label.Find(fieldSelector)
	if id, ok := label.Attr("for"); ok {
		field = form.Find("#" + id).FilterMatcher(goquery.Single(fieldSelector))
	}
	if field.Length() == 0 {
		return nil, fmt.Errorf("no field for label: %s", labelText)
	}
	return field.First(), nil
}

// FindForm returns the form posting to formActionURLPath.
func FindForm(doc *goquery.Document, formActionURLPath string) (*goquery.Selection, error) {
	form := doc.Find(fmt.Sprintf("form[action='%s']", formActionURLPath))
	if form.Length() == 0 {
		return nil, fmt.Errorf("form not found: %s", formActionURLPath)
	}
	return form, nil
}
