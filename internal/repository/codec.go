package repository

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"gopkg.in/yaml.v3"
)

// decodeFunc parses a stored profile document
type decodeFunc func(raw []byte) (*models.Profile, error)

// profileExtensions lists the supported file extensions in lookup order
var profileExtensions = []string{".json", ".yaml", ".yml", ".xml"}

var decoders = map[string]decodeFunc{
	".json": decodeJSON,
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".xml":  decodeXML,
}

func decodeJSON(raw []byte) (*models.Profile, error) {
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to parse JSON profile: %w", err)
	}
	return &p, nil
}

func decodeYAML(raw []byte) (*models.Profile, error) {
	var p models.Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML profile: %w", err)
	}
	return &p, nil
}

// decodeXML reads the core-banking export layout:
//
//	<profile name="...">
//	  <expenses><category key="" label="" monthly=""/></expenses>
//	  <time_series>
//	    <period id="6M">
//	      <labels><label>Jan</label></labels>
//	      <points><point>1000</point></points>
//	      <metrics salary="" resilience="" liq=""/>
//	    </period>
//	  </time_series>
//	</profile>
func decodeXML(raw []byte) (*models.Profile, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("failed to parse XML profile: %w", err)
	}
	root := doc.SelectElement("profile")
	if root == nil {
		return nil, fmt.Errorf("failed to parse XML profile: missing <profile> root")
	}

	p := &models.Profile{
		Name:       root.SelectAttrValue("name", ""),
		TimeSeries: map[string]models.TimeSeriesBlock{},
	}

	if exp := root.SelectElement("expenses"); exp != nil {
		for _, c := range exp.SelectElements("category") {
			monthly, err := parseNumber(c.SelectAttrValue("monthly", ""))
			if err != nil {
				return nil, fmt.Errorf("category %q: %w", c.SelectAttrValue("key", ""), err)
			}
			p.Expenses.Categories = append(p.Expenses.Categories, models.ExpenseCategory{
				Key:     c.SelectAttrValue("key", ""),
				Label:   c.SelectAttrValue("label", ""),
				Monthly: monthly,
			})
		}
	}

	if ts := root.SelectElement("time_series"); ts != nil {
		for _, el := range ts.SelectElements("period") {
			id := el.SelectAttrValue("id", "")
			if id == "" {
				return nil, fmt.Errorf("failed to parse XML profile: period without id")
			}
			block, err := decodeXMLBlock(el)
			if err != nil {
				return nil, fmt.Errorf("period %s: %w", id, err)
			}
			p.TimeSeries[id] = block
		}
	}
	return p, nil
}

func decodeXMLBlock(el *etree.Element) (models.TimeSeriesBlock, error) {
	block := models.TimeSeriesBlock{
		Labels:  []string{},
		Points:  []float64{},
		Metrics: map[string]float64{},
	}
	for _, l := range el.FindElements("./labels/label") {
		block.Labels = append(block.Labels, strings.TrimSpace(l.Text()))
	}
	for _, pt := range el.FindElements("./points/point") {
		v, err := parseNumber(pt.Text())
		if err != nil {
			return block, err
		}
		block.Points = append(block.Points, v)
	}
	if m := el.SelectElement("metrics"); m != nil {
		for _, attr := range m.Attr {
			v, err := parseNumber(attr.Value)
			if err != nil {
				return block, fmt.Errorf("metric %s: %w", attr.Key, err)
			}
			block.Metrics[attr.Key] = v
		}
	}
	return block, nil
}

// parseNumber treats an empty value as 0
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
