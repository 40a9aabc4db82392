package lookup

var defaultMaps = map[int]string{
	9:  "Arabia",
	10: "Archipelago",
	11: "Baltic",
	12: "Black Forest",
	13: "Coastal",
	14: "Continental",
	15: "Crater Lake",
	16: "Fortress",
	17: "Gold Rush",
	18: "Highland",
	19: "Islands",
	20: "Mediterranean",
	21: "Migration",
	22: "Rivers",
	23: "Team Islands",
	24: "Full Random",
	25: "Scandinavia",
	26: "Mongolia",
	27: "Yucatan",
	28: "Salt Marsh",
	29: "Arena",
	31: "Oasis",
	32: "Ghost Lake",
	33: "Nomad",
	49: "Iberia",
	50: "Britain",
	51: "Mideast",
	52: "Texas",
	53: "Italy",
	54: "Central America",
	55: "France",
	56: "Norse Lands",
	57: "Sea of Japan (East Sea)",
	58: "Byzantium",
	67: "Budapest",
	71: "Golden Pit",
	72: "Hideout",
	73: "Hill Fort",
	74: "Lombardia",
	75: "Steppe",
	76: "Valley",
	77: "MegaRandom",
}

var defaultCivs = map[int]string{
	1:  "Britons",
	2:  "Franks",
	3:  "Goths",
	4:  "Teutons",
	5:  "Japanese",
	6:  "Chinese",
	7:  "Byzantines",
	8:  "Persians",
	9:  "Saracens",
	10: "Turks",
	11: "Vikings",
	12: "Mongols",
	13: "Celts",
	14: "Spanish",
	15: "Aztecs",
	16: "Mayans",
	17: "Huns",
	18: "Koreans",
	19: "Italians",
	20: "Hindustanis",
	21: "Incas",
	22: "Magyars",
	23: "Slavs",
	24: "Portuguese",
	25: "Ethiopians",
	26: "Malians",
	27: "Berbers",
	28: "Khmer",
	29: "Malay",
	30: "Burmese",
	31: "Vietnamese",
	32: "Bulgarians",
	33: "Tatars",
	34: "Cumans",
	35: "Lithuanians",
	36: "Burgundians",
	37: "Sicilians",
	38: "Poles",
	39: "Bohemians",
	40: "Dravidians",
	41: "Bengalis",
	42: "Gurjaras",
	43: "Romans",
	44: "Armenians",
	45: "Georgians",
}
