package zealdoc

import "net/url"

// Canonical symbol categories.
const (
	SymbolAttribute   = "Attribute"
	SymbolBinding     = "Binding"
	SymbolCategory    = "Category"
	SymbolClass       = "Class"
	SymbolConstant    = "Constant"
	SymbolConstructor = "Constructor"
	SymbolEnumeration = "Enumeration"
	SymbolEvent       = "Event"
	SymbolField       = "Field"
	SymbolFunction    = "Function"
	SymbolGuide       = "Guide"
	SymbolNamespace   = "Namespace"
	SymbolMacro       = "Macro"
	SymbolMethod      = "Method"
	SymbolOperator    = "Operator"
	SymbolProperty    = "Property"
	SymbolProtocol    = "Protocol"
	SymbolStructure   = "Structure"
	SymbolType        = "Type"
	SymbolVariable    = "Variable"
)

// symbolAliases maps the category labels emitted by docset generators
// (Doxygen sections, Dash abbreviations) onto canonical categories.
var symbolAliases = map[string]string{
	"Package Attributes":          SymbolAttribute,
	"Private Attributes":          SymbolAttribute,
	"Protected Attributes":        SymbolAttribute,
	"Public Attributes":           SymbolAttribute,
	"Static Package Attributes":   SymbolAttribute,
	"Static Private Attributes":   SymbolAttribute,
	"Static Protected Attributes": SymbolAttribute,
	"Static Public Attributes":    SymbolAttribute,
	"XML Attributes":              SymbolAttribute,

	"binding": SymbolBinding,

	"cat":    SymbolCategory,
	"Groups": SymbolCategory,
	"Pages":  SymbolCategory,

	"cl":             SymbolClass,
	"specialization": SymbolClass,
	"tmplt":          SymbolClass,

	"data":          SymbolConstant,
	"econst":        SymbolConstant,
	"enumdata":      SymbolConstant,
	"enumelt":       SymbolConstant,
	"clconst":       SymbolConstant,
	"structdata":    SymbolConstant,
	"writerid":      SymbolConstant,
	"Notifications": SymbolConstant,

	"structctr":           SymbolConstructor,
	"Public Constructors": SymbolConstructor,

	"enum":         SymbolEnumeration,
	"Enum":         SymbolEnumeration,
	"Enumerations": SymbolEnumeration,

	"event":            SymbolEvent,
	"Public Events":    SymbolEvent,
	"Inherited Events": SymbolEvent,
	"Private Events":   SymbolEvent,

	"Data Fields": SymbolField,

	"dcop":                              SymbolFunction,
	"func":                              SymbolFunction,
	"ffunc":                             SymbolFunction,
	"signal":                            SymbolFunction,
	"slot":                              SymbolFunction,
	"grammar":                           SymbolFunction,
	"Function Prototypes":               SymbolFunction,
	"Functions/Subroutines":             SymbolFunction,
	"Members":                           SymbolFunction,
	"Package Functions":                 SymbolFunction,
	"Private Member Functions":          SymbolFunction,
	"Private Slots":                     SymbolFunction,
	"Protected Member Functions":        SymbolFunction,
	"Protected Slots":                   SymbolFunction,
	"Public Member Functions":           SymbolFunction,
	"Public Slots":                      SymbolFunction,
	"Signals":                           SymbolFunction,
	"Static Package Functions":          SymbolFunction,
	"Static Private Member Functions":   SymbolFunction,
	"Static Protected Member Functions": SymbolFunction,
	"Static Public Member Functions":    SymbolFunction,

	"doc": SymbolGuide,

	"ns": SymbolNamespace,

	"macro": SymbolMacro,

	"clm":               SymbolMethod,
	"enumcm":            SymbolMethod,
	"enumctr":           SymbolMethod,
	"enumm":             SymbolMethod,
	"intfctr":           SymbolMethod,
	"intfcm":            SymbolMethod,
	"intfm":             SymbolMethod,
	"intfsub":           SymbolMethod,
	"instsub":           SymbolMethod,
	"instctr":           SymbolMethod,
	"instm":             SymbolMethod,
	"structcm":          SymbolMethod,
	"structm":           SymbolMethod,
	"structsub":         SymbolMethod,
	"Class Methods":     SymbolMethod,
	"Inherited Methods": SymbolMethod,
	"Instance Methods":  SymbolMethod,
	"Private Methods":   SymbolMethod,
	"Protected Methods": SymbolMethod,
	"Public Methods":    SymbolMethod,

	"intfopfunc": SymbolOperator,
	"opfunc":     SymbolOperator,

	"enump":                SymbolProperty,
	"intfdata":             SymbolProperty,
	"intfp":                SymbolProperty,
	"instp":                SymbolProperty,
	"structp":              SymbolProperty,
	"Inherited Properties": SymbolProperty,
	"Private Properties":   SymbolProperty,
	"Protected Properties": SymbolProperty,
	"Public Properties":    SymbolProperty,

	"intf": SymbolProtocol,

	"struct":          SymbolStructure,
	"Data Structures": SymbolStructure,
	"Struct":          SymbolStructure,

	"tag":             SymbolType,
	"tdef":            SymbolType,
	"Data Types":      SymbolType,
	"Package Types":   SymbolType,
	"Private Types":   SymbolType,
	"Protected Types": SymbolType,
	"Public Types":    SymbolType,
	"Typedefs":        SymbolType,

	"var": SymbolVariable,
}

// ParseSymbolType maps a raw category label onto its canonical category.
// Unknown labels are returned unchanged.
func ParseSymbolType(raw string) string {
	if s, ok := symbolAliases[raw]; ok {
		return s
	}
	return raw
}

// Symbol is a named entry in a docset category.
type Symbol struct {
	Name string
	URL  *url.URL
}

// SymbolIndex is an ordered multi-map from symbol name to page URL for one
// category. Entries are sorted by name; a name may appear more than once.
type SymbolIndex struct {
	Category string
	Symbols  []Symbol
}

// Len returns the number of entries.
func (x *SymbolIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.Symbols)
}

// Lookup returns every URL recorded for name, in insertion order.
func (x *SymbolIndex) Lookup(name string) []*url.URL {
	if x == nil {
		return nil
	}
	var urls []*url.URL
	for _, s := range x.Symbols {
		if s.Name == name {
			urls = append(urls, s.URL)
		}
	}
	return urls
}

// Names returns the distinct symbol names in order.
func (x *SymbolIndex) Names() []string {
	if x == nil {
		return nil
	}
	var names []string
	for i, s := range x.Symbols {
		if i > 0 && x.Symbols[i-1].Name == s.Name {
			continue
		}
		names = append(names, s.Name)
	}
	return names
}
