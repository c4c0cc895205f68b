package names

var adjectives = []string{
	"Amber", "Brave", "Bright", "Calm", "Cheery", "Clever", "Cozy", "Crimson",
	"Daring", "Eager", "Emerald", "Fluffy", "Gentle", "Golden", "Happy", "Jolly",
	"Lively", "Lucky", "Merry", "Mighty", "Nimble", "Peppy", "Purple", "Quiet",
	"Shiny", "Silent", "Silver", "Sleepy", "Sparkly", "Sunny", "Swift", "Witty",
}

var animals = []string{
	"Badger", "Beaver", "Bunny", "Dolphin", "Falcon", "Ferret", "Finch", "Fox",
	"Gecko", "Hedgehog", "Heron", "Koala", "Lemur", "Lynx", "Marmot", "Narwhal",
	"Otter", "Owl", "Panda", "Parrot", "Penguin", "Puffin", "Raccoon", "Robin",
	"Seal", "Sparrow", "Squirrel", "Stoat", "Swallow", "Toucan", "Walrus", "Wombat",
}
