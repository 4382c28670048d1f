package model

// ThemeColors holds the palette used by the views
type ThemeColors struct {
	Rosewater      string `json:"rosewater"`
	DustyRose      string `json:"dustyRose"`
	CoffeePotLight string `json:"coffeePotLight"`
	CoffeePotDark  string `json:"coffeePotDark"`
}

// ThemeColorsPatch is a partial update of ThemeColors. Nil fields are left alone.
type ThemeColorsPatch struct {
	Rosewater      *string `json:"rosewater,omitempty"`
	DustyRose      *string `json:"dustyRose,omitempty"`
	CoffeePotLight *string `json:"coffeePotLight,omitempty"`
	CoffeePotDark  *string `json:"coffeePotDark,omitempty"`
}

// Merge returns c with every non-nil field of p applied
func (c ThemeColors) Merge(p ThemeColorsPatch) ThemeColors {
	if p.Rosewater != nil {
		c.Rosewater = *p.Rosewater
	}
	if p.DustyRose != nil {
		c.DustyRose = *p.DustyRose
	}
	if p.CoffeePotLight != nil {
		c.CoffeePotLight = *p.CoffeePotLight
	}
	if p.CoffeePotDark != nil {
		c.CoffeePotDark = *p.CoffeePotDark
	}
	return c
}

// Settings is the singleton application settings object
type Settings struct {
	DarkMode    bool        `json:"darkMode"`
	ThemeColors ThemeColors `json:"themeColors"`
}

// DefaultThemeColors returns the stock palette
func DefaultThemeColors() ThemeColors {
	return ThemeColors{
		Rosewater:      "#e8b4b8",
		DustyRose:      "#eed6d3",
		CoffeePotLight: "#a49393",
		CoffeePotDark:  "#67595e",
	}
}

// DefaultSettings returns light mode with the stock palette
func DefaultSettings() Settings {
	return Settings{
		DarkMode:    false,
		ThemeColors: DefaultThemeColors(),
	}
}
