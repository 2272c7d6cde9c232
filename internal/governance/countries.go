package governance

// Countries are the selectable target regions, DefaultRegion first.
var Countries = []string{ //nolint:gochecknoglobals
	"Global", "Angola", "Argentina", "Australia", "Austria", "Bahrain", "Belarus", "Belgium", "Bolivia",
	"Brazil", "Bulgaria", "Cambodia", "Cameroon", "Canada", "Chile", "China", "Colombia", "Costa Rica",
	"Croatia", "Cyprus", "Denmark", "Dominican Republic", "Ecuador", "Egypt", "El Salvador", "Estonia",
	"Ethiopia", "Finland", "France", "Germany", "Ghana", "Greece", "Guatemala", "Honduras", "Hong Kong",
	"Hungary", "Iceland", "India", "Ireland", "Israel", "Italy", "Ivory Coast", "Japan", "Jordan",
	"Kazakhstan", "Kenya", "Kuwait", "Latvia", "Lithuania", "Luxembourg", "Malaysia", "Mexico", "Morocco",
	"Myanmar", "Nepal", "Netherlands", "New Zealand", "Nigeria", "Norway", "Oman", "Panama",
	"Papua New Guinea", "Paraguay", "Peru", "Philippines", "Poland", "Portugal", "Puerto Rico", "Qatar",
	"Romania", "Russia", "Saudi Arabia", "Senegal", "Serbia", "Singapore", "Slovakia", "Slovenia",
	"South Africa", "South Korea", "Spain", "Sri Lanka", "Sweden", "Switzerland", "Taiwan", "Tanzania",
	"Thailand", "Trinidad & Tobago", "Tunisia", "Turkey", "UAE", "Uganda", "Ukraine", "United Kingdom",
	"United States", "Uruguay", "Uzbekistan", "Vietnam", "Zimbabwe",
}

// Languages offered as translation targets.
var Languages = []string{"Spanish", "French", "German", "Japanese", "Chinese"} //nolint:gochecknoglobals
