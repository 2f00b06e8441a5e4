package utils

// PerfilMapIntToStr maps profile integers to their string representations
var PerfilMapIntToStr = map[int]string{
	1: "ADMIN",
	2: "COMITE",
}

// PerfilMapStrToInt maps profile strings to their integer representations
var PerfilMapStrToInt = map[string]int{
	"ADMIN":  1,
	"COMITE": 2,
}
