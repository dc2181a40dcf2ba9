// Package i18n holds the tr/en label tables used by the API and the rendered document.
package i18n

import (
	"fmt"
	"sort"
	"strings"

	"github.com/smallbiznis/fatura/internal/invoice/domain"
)

// Language is a supported UI language.
type Language string

const (
	Turkish Language = "tr"
	English Language = "en"
)

// Languages lists the supported languages; every table defines both.
var Languages = []Language{Turkish, English}

// ParseLanguage validates a language code.
func ParseLanguage(raw string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(raw))) {
	case Turkish:
		return Turkish, nil
	case English:
		return English, nil
	default:
		return "", domain.ErrInvalidLanguage
	}
}

// Table maps label keys to text for one language.
type Table map[string]string

var base = map[Language]Table{
	Turkish: {
		"title":                 "FATURA",
		"subtitle":              "Profesyonel Fatura Olusturucu",
		"create":                "Fatura Olustur",
		"preview":               "Önizleme",
		"history":               "Gecmis",
		"newInvoice":            "+ Yeni Fatura",
		"saved":                 "Fatura basariyla kaydedildi!",
		"language":              "Dil",
		"light":                 "Acik",
		"dark":                  "Koyu",
		"addLogo":               "+ Logonuzu Ekleyin",
		"invoiceInfo":           "Fatura Bilgileri",
		"invoiceNumber":         "Fatura Numarasi",
		"invoiceNumberShort":    "Fatura No",
		"date":                  "Tarih",
		"dueDate":               "Ödeme Tarihi",
		"poNumber":              "PO Numarasi",
		"poNumberShort":         "PO No",
		"optional":              "Istege bagli",
		"companyInfo":           "Sirket Bilgileri",
		"companyName":           "Sirket Adi",
		"companyEmail":          "Sirket E-Posta",
		"companyPhone":          "Sirket Telefonu",
		"clientInfo":            "Musteri Bilgileri",
		"clientName":            "Musteri Adi",
		"clientEmail":           "Musteri E-Posta",
		"clientPhone":           "Musteri Telefonu",
		"clientAddress":         "Musteri Adresi",
		"client":                "Musteri",
		"notes":                 "Notlar",
		"notesPlaceholder":      "Notlar - henuz kapsamini ilgili bilgiler",
		"conditions":            "Sartlar",
		"conditionsPlaceholder": "Sartlar ve kosullar",
		"conditionsTitle":       "Sartlar ve Kosullar",
		"discount":              "İndirim",
		"discountPercent":       "Indirim Yuzdesi (%)",
		"discountAmount":        "Indirim Tutari",
		"theme":                 "Tema",
		"currency":              "Para Birimi",
		"save":                  "Kaydet",
		"items":                 "Oge",
		"itemDesc":              "Urun/hizmetin aciklamasi...",
		"addItem":               "+ Satir Ogesi",
		"remove":                "Kaldir",
		"subtotal":              "Ara toplam",
		"tax":                   "Vergi",
		"taxLabel":              "Vergi Çeşidi",
		"total":                 "Toplam",
		"download":              "İndir",
		"print":                 "Yazdir",
		"invoice":               "FATURA",
		"billTo":                "Fatura Alan",
		"product":               "Urun/Hizmet",
		"quantity":              "Miktar",
		"rate":                  "Oran",
		"amount":                "Tutar",
		"action":                "Islem",
		"view":                  "Goruntule",
		"noInvoices":            "Henuz fatura yoktur",
		"defaultSave":           "Varsayilani Kaydet",
		"loadDefault":           "Varsayilani Yukle",
		"saveTemplate":          "Sablon Olarak Kaydet",
		"applyTemplate":         "Sablonu Uygula",
		"deleteTemplate":        "Sablonu Sil",
		"templates":             "Sablonlar",
		"noTemplates":           "Sablon yok",
		"templateSaved":         "Sablon kaydedildi",
		"templateDeleted":       "Sablon silindi",
		"templateNamePrompt":    "Sablon adi girin",
		"extraOther":            "Diger",
		"loadFailed":            "Yukleme basarisiz",
		"saveFailed":            "Kaydetme basarisiz",
	},
	English: {
		"title":                 "INVOICE",
		"subtitle":              "Professional Invoice Generator",
		"create":                "Create Invoice",
		"preview":               "Preview",
		"history":               "History",
		"newInvoice":            "+ New Invoice",
		"saved":                 "Invoice saved successfully!",
		"language":              "Language",
		"light":                 "Light",
		"dark":                  "Dark",
		"addLogo":               "+ Add Your Logo",
		"invoiceInfo":           "Invoice Information",
		"invoiceNumber":         "Invoice Number",
		"invoiceNumberShort":    "Invoice No",
		"date":                  "Date",
		"dueDate":               "Due Date",
		"poNumber":              "PO Number",
		"poNumberShort":         "PO No",
		"optional":              "Optional",
		"companyInfo":           "Company Information",
		"companyName":           "Company Name",
		"companyEmail":          "Company Email",
		"companyPhone":          "Company Phone",
		"clientInfo":            "Client Information",
		"clientName":            "Client Name",
		"clientEmail":           "Client Email",
		"clientPhone":           "Client Phone",
		"clientAddress":         "Client Address",
		"client":                "Client",
		"notes":                 "Notes",
		"notesPlaceholder":      "Notes - relevant information",
		"conditions":            "Conditions",
		"conditionsPlaceholder": "Terms and conditions",
		"conditionsTitle":       "Terms and Conditions",
		"discount":              "Discount",
		"discountPercent":       "Discount Percentage (%)",
		"discountAmount":        "Discount Amount",
		"theme":                 "Theme",
		"currency":              "Currency",
		"save":                  "Save",
		"items":                 "Items",
		"itemDesc":              "Product/service description...",
		"addItem":               "+ Add Line Item",
		"remove":                "Remove",
		"subtotal":              "Subtotal",
		"tax":                   "Tax",
		"taxLabel":              "Tax Label",
		"total":                 "Total",
		"download":              "Download",
		"print":                 "Print",
		"invoice":               "INVOICE",
		"billTo":                "Bill To",
		"product":               "Product/Service",
		"quantity":              "Quantity",
		"rate":                  "Rate",
		"amount":                "Amount",
		"action":                "Action",
		"view":                  "View",
		"noInvoices":            "No invoices yet",
		"defaultSave":           "Save as Default",
		"loadDefault":           "Load Defaults",
		"saveTemplate":          "Save as Template",
		"applyTemplate":         "Apply Template",
		"deleteTemplate":        "Delete Template",
		"templates":             "Templates",
		"noTemplates":           "No templates",
		"templateSaved":         "Template saved",
		"templateDeleted":       "Template deleted",
		"templateNamePrompt":    "Enter template name",
		"extraOther":            "Other",
		"loadFailed":            "Failed to load",
		"saveFailed":            "Failed to save",
	},
}

// CheckSymmetric returns an error naming the first key defined for one language but not the other.
func CheckSymmetric(tables map[Language]Table) error {
	for _, a := range Languages {
		for _, b := range Languages {
			if a == b {
				continue
			}
			keys := make([]string, 0, len(tables[a]))
			for key := range tables[a] {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				if _, ok := tables[b][key]; !ok {
					return fmt.Errorf("label %q defined for %s but missing for %s", key, a, b)
				}
			}
		}
	}
	return nil
}
