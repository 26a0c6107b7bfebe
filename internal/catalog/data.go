package catalog

import "github.com/temcen/anirec/pkg/models"

// categories is the canonical genre catalog. Order matters: it fixes the order
// of category sections in a recommendation set.
var categories = []Category{
	{Name: "Shonen Action & Battle", Items: []int{
		16498, 11061, 20, 1735, 21, 30276, 38000, 40748, 51009, 38691,
		34566, 31964, 36456, 41467, 269, 11757, 21939, 28223, 23273, 21087,
		22535, 25777, 31240, 37991, 48561, 50709, 40060, 42897, 31043,
	}},
	{Name: "Psychological & Thriller", Items: []int{
		1535, 9253, 5114, 31240, 37510, 51535, 41025, 52701, 31043, 22199,
		28735, 11061, 199, 37450, 820, 2904, 1575, 13601, 10087, 17074,
		48561, 19815, 30831,
	}},
	{Name: "Romance & Slice of Life", Items: []int{
		37450, 28851, 32281, 33352, 37987, 30831, 37976, 43608, 39486, 48736,
		49596, 50265, 52034, 42897, 23273, 14813, 34599, 41025, 40357, 50739,
		52299, 48926, 31758, 28297, 18897, 21405, 24415, 14741, 23847,
	}},
	{Name: "Fantasy & Adventure", Items: []int{
		52991, 54595, 40060, 48316, 25537, 10087, 33050, 39535, 40456, 34599,
		48561, 51179, 35247, 40591, 11061, 21, 5114, 37430, 38000, 31240,
		28223, 31043, 19815, 28977, 11757, 21939, 31765, 38524,
	}},
	{Name: "Comedy & Parody", Items: []int{
		30831, 37976, 43608, 30276, 34096, 37510, 33352, 28977, 52299, 50739,
		48736, 49596, 50265, 41457, 19815, 25099, 24833, 32281, 42897, 28297,
		14741, 24415,
	}},
	{Name: "Dark Fantasy & Horror", Items: []int{
		38691, 16498, 51535, 38524, 37430, 40748, 51009, 52701, 34599, 48561,
		22535, 21087, 31240, 13601, 22319, 27899, 30276, 40456,
	}},
	{Name: "Sports & Competition", Items: []int{
		20583, 22199, 34564, 36896, 50709, 11771, 22765, 24415, 10271, 18245,
		31043, 28891, 22789, 28223, 31964, 40456, 23273,
	}},
	{Name: "Drama & Emotional", Items: []int{
		33352, 37987, 28851, 32281, 37450, 9253, 52034, 40060, 48316, 5114,
		23273, 31043, 42897, 31240, 820, 199, 164, 431, 523, 1482,
		2904, 52701,
	}},
	{Name: "Sci-Fi & Mecha", Items: []int{
		9253, 1575, 2904, 13601, 820, 30, 32, 5114, 48561, 48569,
		11757, 52701, 19815, 50160,
	}},
	{Name: "Mystery & Detective", Items: []int{
		1535, 31043, 41025, 13601, 820, 199, 37450, 9253, 17074, 22789,
		52034,
	}},
}

var similarity = map[int][]int{
	// Attack on Titan
	16498: {51535, 38691, 40748, 1535, 37430, 38524, 22535, 31240},
	// Demon Slayer
	38000: {40748, 16498, 11061, 30276, 34566, 51009, 38691, 31964},
	// Death Note
	1535: {9253, 37510, 31240, 41025, 52701, 13601, 31043, 1575},
	// Steins;Gate
	9253: {1535, 31240, 37450, 37510, 40060, 31043, 13601, 41025},
	// Fullmetal Alchemist: Brotherhood
	5114: {11061, 16498, 40060, 52991, 39535, 31240, 21, 37430},
	// Hunter x Hunter (2011)
	11061: {5114, 16498, 30276, 21, 40748, 38000, 31964, 28223},
	// One Punch Man
	30276: {37510, 30831, 49596, 11061, 34566, 34096, 40748, 52299},
	// Jujutsu Kaisen
	40748: {38000, 51009, 38691, 16498, 34566, 31964, 11061, 30276},
	// Your Name
	32281: {28851, 33352, 37450, 52034, 48736, 42897, 23273, 37987},
	// Kaguya-sama
	30831: {37976, 43608, 39486, 48736, 49596, 37450, 42897, 52299},
	// Spy x Family
	49596: {50265, 30831, 52034, 48736, 41457, 42897, 30276, 37976},
	// Frieren
	52991: {54595, 40060, 48316, 5114, 39535, 40456, 33352, 31240},
	// Chainsaw Man
	38691: {40748, 51009, 16498, 38000, 37430, 22535, 21087, 51535},
	// Violet Evergarden
	33352: {37987, 28851, 32281, 37450, 52034, 23273, 42897, 52991},
	// Bocchi the Rock!
	52299: {50739, 30831, 49596, 48736, 41457, 37976, 52034, 42897},
}

var hiddenGems = []int{
	52034, 48736, 40059, 39535, 41025, 50739, 40456, 48561, 52701, 51179,
	48569, 43608, 50602, 48926, 51009, 21087, 31043, 33050, 37987, 41084,
}

var trending = []int{
	54595, 52991, 52701, 52034, 51009, 50602, 50709, 49596, 48561, 51535,
	50265, 38691, 52299, 48736, 50739, 41457, 48549, 52742,
}

var classics = []int{
	5114, 1535, 9253, 11061, 820, 28977, 9969, 20958, 11757, 1735,
	28851, 32281, 16498, 30276, 199, 164, 431,
}

var defaults = models.RecommendationSet{
	{Label: "Popular Starters", Items: []int{5114, 16498, 11061, 1535, 9253, 30276, 38000, 40748, 28851, 32281, 21, 34566}},
	{Label: "Action & Adventure", Items: []int{16498, 11061, 30276, 40748, 38000, 31964, 41467, 34566, 21, 20, 38691, 51009}},
	{Label: "Must-Watch Classics", Items: []int{5114, 1535, 9253, 28851, 32281, 820, 199, 164, 431, 11757}},
	{Label: "Trending Now", Items: []int{54595, 52034, 51009, 50602, 49596, 48736, 52701, 50709, 38691, 52299}},
}
