package domain

// Banners описывает промо-баннеры главной страницы
type Banners struct {
	Banner1URL *string `json:"banner1Url"`
	Banner2URL *string `json:"banner2Url"`
}

// ContactInfo описывает контактные данные магазина
type ContactInfo struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}
