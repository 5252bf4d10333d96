package location

// defaultVariants maps known spelling variants, abbreviations and
// parish-vs-neighborhood names to the canonical Lisbon neighborhood.
// Keys are cleaned before use, so accented and plain forms both work.
var defaultVariants = map[string]string{
	"arroios":                  "Arroios",
	"anjos":                    "Arroios",
	"anjos arroios":            "Arroios",
	"pena":                     "Arroios",
	"pena arroios":             "Arroios",
	"alfama":                   "Alfama",
	"alfama santa maria maior": "Alfama",
	"santa maria maior":        "Alfama",
	"castelo":                  "Alfama",
	"ajuda":                    "Ajuda",
	"alto da ajuda":            "Ajuda",
	"calcada da ajuda":         "Ajuda",
	"boa hora ajuda":           "Ajuda",
	"alcantara":                "Alcântara",
	"lx factory":               "Alcântara",
	"largo do calvario":        "Alcântara",
	"alto de alcantara":        "Alcântara",
	"alvito":                   "Alcântara",
	"quinta do jacinto":        "Alcântara",
	"alvalade":                 "Alvalade",
	"sao joao de brito":        "Alvalade",
	"areeiro":                  "Areeiro",
	"bairro dos actores":       "Areeiro",
	"avenidas novas":           "Avenidas Novas",
	"av novas":                 "Avenidas Novas",
	"avenida novas":            "Avenidas Novas",
	"entrecampos":              "Avenidas Novas",
	"saldanha":                 "Avenidas Novas",
	"campo pequeno":            "Avenidas Novas",
	"baixa":                    "Baixa",
	"baixa chiado":             "Baixa",
	"chiado":                   "Baixa",
	"rossio":                   "Baixa",
	"martim moniz":             "Baixa",
	"beato":                    "Beato",
	"belem":                    "Belém",
	"restelo":                  "Belém",
	"benfica":                  "Benfica",
	"portas de benfica":        "Benfica",
	"estrada de benfica":       "Benfica",
	"arneiros":                 "Benfica",
	"bica":                     "Bica",
	"misericordia":             "Bica",
	"bica misericordia":        "Bica",
	"santa catarina":           "Bica",
	"bairro alto":              "Bairro Alto",
	"cais do sodre":            "Cais do Sodré",
	"cais sodre":               "Cais do Sodré",
	"campo de ourique":         "Campo de Ourique",
	"campo ourique":            "Campo de Ourique",
	"santa isabel":             "Campo de Ourique",
	"prazeres":                 "Campo de Ourique",
	"maria pia":                "Campo de Ourique",
	"campolide":                "Campolide",
	"sete rios":                "Campolide",
	"praca de espanha":         "Campolide",
	"bairro da serafina":       "Campolide",
	"carnide":                  "Carnide",
	"bairro novo carnide":      "Carnide",
	"estrela":                  "Estrela",
	"lapa":                     "Estrela",
	"lapa estrela":             "Estrela",
	"madragoa":                 "Estrela",
	"santos o velho":           "Estrela",
	"santos":                   "Estrela",
	"sao bento":                "São Bento",
	"s bento":                  "São Bento",
	"graca":                    "Graça",
	"sao vicente":              "Graça",
	"graca sao vicente":        "Graça",
	"intendente":               "Arroios",
	"mouraria":                 "Mouraria",
	"lumiar":                   "Lumiar",
	"telheiras":                "Lumiar",
	"marvila":                  "Marvila",
	"olivais":                  "Olivais",
	"oriente":                  "Parque das Nações",
	"parque das nacoes":        "Parque das Nações",
	"parque nacoes":            "Parque das Nações",
	"penha de franca":          "Penha de França",
	"barao sabrosa":            "Penha de França",
	"principe real":            "Príncipe Real",
	"avenida da liberdade":     "Avenida da Liberdade",
	"avenida liberdade":        "Avenida da Liberdade",
	"av liberdade":             "Avenida da Liberdade",
	"marques de pombal":        "Marquês de Pombal",
	"marques pombal":           "Marquês de Pombal",
	"rato":                     "Marquês de Pombal",
	"amoreiras":                "Campolide",
	"santa clara":              "Santa Clara",
	"santo antonio":            "Santo António",
	"sao domingos de benfica":  "São Domingos de Benfica",
	"santa apolonia":           "Santa Apolónia",
	"campo grande":             "Campo Grande",
	"almirante reis":           "Arroios",
	"avenida almirante reis":   "Arroios",
}
