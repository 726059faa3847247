package refdata

// Canonical column names produced by the sheet readers. All downstream
// transforms address cells through these keys, never through the raw
// spreadsheet headers.
const (
	ColDocumentNo = "document_no"
	ColCustomer   = "customer"
	ColPerson     = "person"
	ColDate       = "date"
	ColAmount     = "amount"
	ColCost       = "cost"
	ColCurrency   = "currency"

	ColShortName = "short_name"
	ColLongName  = "long_name"
	ColOwner     = "owner"

	ColFullName  = "full_name"
	ColDept      = "department"
	ColHireDate  = "hire_date"
	ColLeaveDate = "leave_date"

	ColNote = "note"

	ColTechnician1 = "technician_1"
	ColTechnician2 = "technician_2"
	ColCity        = "city"
	ColProduct     = "product"
	ColResponsible = "responsible"

	ColRecordNo = "record_no"
	ColSerialNo = "serial_no"
	ColDeviceNo = "device_no"

	ColRegionID   = "region_id"
	ColRegionName = "region_name"
)

// Column mappings translate the raw spreadsheet headers (matched
// case-insensitively after trimming) into canonical names. Columns missing
// from a mapping are dropped from the record.

var QuoteColumns = map[string]string{
	"Teklif No":   ColDocumentNo,
	"Müşteri":     ColCustomer,
	"Sorumlu":     ColPerson,
	"Tarih":       ColDate,
	"Tutar":       ColAmount,
	"Maliyet":     ColCost,
	"Para Birimi": ColCurrency,
}

var OrderColumns = map[string]string{
	"Sipariş No":  ColDocumentNo,
	"Müşteri":     ColCustomer,
	"Sorumlu":     ColPerson,
	"Tarih":       ColDate,
	"Tutar":       ColAmount,
	"Maliyet":     ColCost,
	"Para Birimi": ColCurrency,
}

var CustomerColumns = map[string]string{
	"Kısa Ad":     ColShortName,
	"Müşteri Adı": ColLongName,
	"Sorumlu":     ColOwner,
}

var PersonnelColumns = map[string]string{
	"Ad Soyad":    ColFullName,
	"Departman":   ColDept,
	"İşe Giriş":   ColHireDate,
	"İşten Çıkış": ColLeaveDate,
}

var ProductColumns = map[string]string{
	"Kayıt No": ColRecordNo,
	"Seri No":  ColSerialNo,
	"Cihaz No": ColDeviceNo,
	"Müşteri":  ColCustomer,
	"Tarih":    ColDate,
}

var CityColumns = map[string]string{
	"SehirAd": ColCity,
	"BolgeId": ColRegionID,
	"BolgeAd": ColRegionName,
}

var HolidayColumns = map[string]string{
	"Tarih":    ColDate,
	"Açıklama": ColNote,
}

var FieldLogColumns = map[string]string{
	"Tarih":        ColDate,
	"Teknisyen 1":  ColTechnician1,
	"Teknisyen 2":  ColTechnician2,
	"Müşteri":      ColCustomer,
	"Şehir":        ColCity,
	"Servis Ürünü": ColProduct,
	"Sorumlu":      ColResponsible,
}
