// pkg/descriptor/branding.go
package descriptor

import (
	"sort"

	"github.com/arc-language/arm64xfwd/pkg/core"
)

// Branding selects product names and file names
type Branding string

const (
	// Mozc is the open source branding
	Mozc Branding = "Mozc"
	// GoogleJapaneseInput is the official branding
	GoogleJapaneseInput Branding = "GoogleJapaneseInput"
)

// Role identifies one of the DLLs a forwarder deals with
type Role string

const (
	RoleForwarder Role = "forwarder"
	RoleARM64Impl Role = "arm64-impl"
	RoleX64Impl   Role = "x64-impl"
)

// Product holds everything that differs between brandings
type Product struct {
	ForwarderDLL    string
	ARM64ImplDLL    string
	X64ImplDLL      string
	FileDescription string
	ProductName     string
}

// products is the only place branding specific values live
var products = map[Branding]Product{
	Mozc: {
		ForwarderDLL:    "mozc_tip64x.dll",
		ARM64ImplDLL:    "mozc_tip64arm.dll",
		X64ImplDLL:      "mozc_tip64.dll",
		FileDescription: "Mozc TIP Module Forwarder",
		ProductName:     "Mozc",
	},
	GoogleJapaneseInput: {
		ForwarderDLL:    "GoogleIMEJaTIP64X.dll",
		ARM64ImplDLL:    "GoogleIMEJaTIP64Arm.dll",
		X64ImplDLL:      "GoogleIMEJaTIP64.dll",
		FileDescription: "Google 日本語入力 TIP モジュール フォワーダー",
		ProductName:     "Google 日本語入力",
	},
}

func init() {
	for b, p := range products {
		if p.ForwarderDLL == "" || p.ARM64ImplDLL == "" || p.X64ImplDLL == "" || p.ProductName == "" {
			panic("descriptor: incomplete product table for " + string(b))
		}
	}
}

// Brandings returns the known brandings, sorted
func Brandings() []string {
	names := make([]string, 0, len(products))
	for b := range products {
		names = append(names, string(b))
	}
	sort.Strings(names)
	return names
}

// ParseBranding validates s against the product table
func ParseBranding(s string) (Branding, error) {
	b := Branding(s)
	if _, ok := products[b]; !ok {
		return "", core.Errorf("parse branding", core.ErrConfiguration,
			"unknown branding %q, expected one of %v", s, Brandings())
	}
	return b, nil
}

// FileName looks up the DLL name for role
func (p Product) FileName(role Role) (string, error) {
	switch role {
	case RoleForwarder:
		return p.ForwarderDLL, nil
	case RoleARM64Impl:
		return p.ARM64ImplDLL, nil
	case RoleX64Impl:
		return p.X64ImplDLL, nil
	default:
		return "", core.Errorf("file name", core.ErrConfiguration, "unknown role %q", role)
	}
}
