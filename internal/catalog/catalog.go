package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Tracked item identifiers: the high-margin transport goods the radar
// watches. Enchanted variants carry an @N suffix and are distinct catalog
// entries from their base form.
var trackedItems = []string{
	// Bags and capes, T4-T8 plus enchantments
	"T4_BAG", "T5_BAG", "T6_BAG", "T7_BAG", "T8_BAG",
	"T4_BAG@1", "T4_BAG@2", "T4_BAG@3", "T5_BAG@1", "T5_BAG@2", "T5_BAG@3",
	"T6_BAG@1", "T6_BAG@2", "T6_BAG@3", "T7_BAG@1", "T7_BAG@2", "T7_BAG@3",
	"T8_BAG@1", "T8_BAG@2", "T8_BAG@3",
	"T4_CAPE", "T5_CAPE", "T6_CAPE", "T7_CAPE", "T8_CAPE",
	"T4_CAPE@1", "T4_CAPE@2", "T4_CAPE@3", "T5_CAPE@1", "T5_CAPE@2", "T5_CAPE@3",
	"T6_CAPE@1", "T6_CAPE@2", "T6_CAPE@3",

	// Faction capes
	"T4_CAPEITEM_FW_MARTLOCK", "T4_CAPEITEM_FW_LYMHURST", "T4_CAPEITEM_FW_FORTSTERLING",
	"T4_CAPEITEM_FW_THETFORD", "T4_CAPEITEM_FW_BRIDGEWATCH", "T4_CAPEITEM_FW_CAERLEON",
	"T6_CAPEITEM_FW_MARTLOCK", "T6_CAPEITEM_FW_LYMHURST", "T6_CAPEITEM_FW_FORTSTERLING",
	"T8_CAPEITEM_FW_MARTLOCK", "T8_CAPEITEM_FW_LYMHURST", "T8_CAPEITEM_FW_FORTSTERLING",

	// Popular weapons
	"T4_MAIN_SWORD", "T5_MAIN_SWORD", "T6_MAIN_SWORD", "T7_MAIN_SWORD", "T8_MAIN_SWORD",
	"T4_MAIN_SWORD@1", "T4_MAIN_SWORD@2", "T4_MAIN_SWORD@3",
	"T4_2H_BOW", "T5_2H_BOW", "T6_2H_BOW", "T7_2H_BOW", "T8_2H_BOW",
	"T4_2H_BOW@1", "T4_2H_BOW@2", "T4_2H_BOW@3",
	"T4_MAIN_AXE", "T5_MAIN_AXE", "T6_MAIN_AXE", "T7_MAIN_AXE", "T8_MAIN_AXE",
	"T4_2H_FIRESTAFF", "T6_2H_FIRESTAFF", "T8_2H_FIRESTAFF",
	"T4_2H_HOLYSTAFF", "T6_2H_HOLYSTAFF", "T8_2H_HOLYSTAFF",
	"T4_MAIN_SPEAR", "T6_MAIN_SPEAR", "T8_MAIN_SPEAR",

	// Armor sets
	"T4_HEAD_PLATE_SET3", "T5_HEAD_PLATE_SET3", "T6_HEAD_PLATE_SET3", "T7_HEAD_PLATE_SET3", "T8_HEAD_PLATE_SET3",
	"T4_ARMOR_LEATHER_SET1", "T5_ARMOR_LEATHER_SET1", "T6_ARMOR_LEATHER_SET1",
	"T4_SHOES_CLOTH_SET2", "T5_SHOES_CLOTH_SET2", "T6_SHOES_CLOTH_SET2",
	"T4_ARMOR_PLATE_SET2", "T6_ARMOR_PLATE_SET2", "T8_ARMOR_PLATE_SET2",
	"T4_HEAD_LEATHER_SET2", "T6_HEAD_LEATHER_SET2", "T8_HEAD_LEATHER_SET2",

	// Mounts
	"T3_MOUNT_HORSE", "T4_MOUNT_HORSE", "T5_MOUNT_HORSE", "T6_MOUNT_HORSE", "T7_MOUNT_HORSE", "T8_MOUNT_HORSE",
	"T3_MOUNT_OX", "T4_MOUNT_OX", "T5_MOUNT_OX", "T6_MOUNT_OX", "T7_MOUNT_OX", "T8_MOUNT_OX",
	"T4_MOUNT_GIANTSTAG", "T6_MOUNT_GIANTSTAG",
	"T5_MOUNT_SWIFTCLAW", "T8_MOUNT_DIREBOAR", "T8_MOUNT_MAMMOTH",

	// Consumables
	"T4_POTION_HEAL", "T6_POTION_HEAL", "T4_POTION_COOLDOWN", "T6_POTION_COOLDOWN",
	"T7_MEAL_OMELETTE", "T7_MEAL_STEW", "T8_MEAL_STEW", "T8_MEAL_OMELETTE",
	"T7_MEAL_OMELETTE@1", "T7_MEAL_STEW@1",

	// Refined resources
	"T4_PLANKS", "T5_PLANKS", "T6_PLANKS", "T7_PLANKS", "T8_PLANKS",
	"T4_METALBAR", "T5_METALBAR", "T6_METALBAR", "T7_METALBAR", "T8_METALBAR",
	"T4_LEATHER", "T5_LEATHER", "T6_LEATHER", "T7_LEATHER", "T8_LEATHER",
	"T4_CLOTH", "T5_CLOTH", "T6_CLOTH", "T7_CLOTH", "T8_CLOTH",
	"T4_STONEBLOCK", "T5_STONEBLOCK", "T6_STONEBLOCK", "T7_STONEBLOCK", "T8_STONEBLOCK",
}

// Hot items the Caerleon/Black Market trends panel watches.
var trendItems = []string{
	"T4_BAG@1", "T5_BAG@1", "T6_BAG@1",
	"T4_CAPE@1", "T5_CAPE@1", "T6_CAPE@1",
	"T4_MAIN_SWORD@1", "T5_MAIN_SWORD@1",
	"T4_ARMOR_LEATHER_SET1@1", "T5_ARMOR_LEATHER_SET1@1",
	"T4_MAIN_AXE@1", "T4_2H_BOW@1",
	"T4_HEAD_PLATE_SET3@1", "T4_SHOES_CLOTH_SET2@1", "T4_ARMOR_CLOTH_SET2@1",
	"T4_HEAD_LEATHER_SET2@1", "T4_SHOES_PLATE_SET1@1",
	"T4_2H_CROSSBOW@1", "T4_2H_DUALSWORD@1", "T4_2H_HALBERD@1",
}

var itemNames = map[string]string{
	"BAG":                      "Bag",
	"CAPE":                     "Cape",
	"MAIN_SWORD":               "Broadsword",
	"2H_BOW":                   "Warbow",
	"MAIN_AXE":                 "Battleaxe",
	"2H_FIRESTAFF":             "Great Fire Staff",
	"2H_HOLYSTAFF":             "Great Holy Staff",
	"MAIN_SPEAR":               "Spear",
	"2H_CROSSBOW":              "Heavy Crossbow",
	"2H_DUALSWORD":             "Dual Swords",
	"2H_HALBERD":               "Halberd",
	"HEAD_PLATE_SET3":          "Guardian Helmet",
	"ARMOR_PLATE_SET2":         "Soldier Armor",
	"SHOES_PLATE_SET1":         "Soldier Boots",
	"HEAD_LEATHER_SET2":        "Hunter Hood",
	"ARMOR_LEATHER_SET1":       "Mercenary Jacket",
	"SHOES_CLOTH_SET2":         "Cleric Sandals",
	"ARMOR_CLOTH_SET2":         "Cleric Robe",
	"MOUNT_HORSE":              "Riding Horse",
	"MOUNT_OX":                 "Transport Ox",
	"MOUNT_GIANTSTAG":          "Giant Stag",
	"MOUNT_SWIFTCLAW":          "Swiftclaw",
	"MOUNT_DIREBOAR":           "Dire Boar",
	"MOUNT_MAMMOTH":            "Transport Mammoth",
	"POTION_HEAL":              "Healing Potion",
	"POTION_COOLDOWN":          "Resistance Potion",
	"MEAL_OMELETTE":            "Omelette",
	"MEAL_STEW":                "Stew",
	"PLANKS":                   "Planks",
	"METALBAR":                 "Metal Bars",
	"LEATHER":                  "Leather",
	"CLOTH":                    "Cloth",
	"STONEBLOCK":               "Stone Blocks",
	"CAPEITEM_FW_MARTLOCK":     "Martlock Cape",
	"CAPEITEM_FW_LYMHURST":     "Lymhurst Cape",
	"CAPEITEM_FW_FORTSTERLING": "Fort Sterling Cape",
	"CAPEITEM_FW_THETFORD":     "Thetford Cape",
	"CAPEITEM_FW_BRIDGEWATCH":  "Bridgewatch Cape",
	"CAPEITEM_FW_CAERLEON":     "Caerleon Cape",
}

const renderBaseURL = "https://render.albiononline.com/v1/item"

var (
	enchantRe = regexp.MustCompile(`@(\d+)$`)
	tierRe    = regexp.MustCompile(`^T(\d+)_`)
)

// TrackedItems returns the watch list. Callers must not mutate the slice.
func TrackedItems() []string {
	return trackedItems
}

// TrendItems returns the Caerleon trends watch list.
func TrendItems() []string {
	return trendItems
}

// Enchantment parses the @N suffix from an item identifier; 0 if absent.
func Enchantment(itemID string) int {
	m := enchantRe.FindStringSubmatch(itemID)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// TierNumber parses the T-prefix of an item identifier; 0 when missing.
func TierNumber(itemID string) int {
	m := tierRe.FindStringSubmatch(itemID)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// TierLabel returns the human tier label, e.g. "T6", or "T?" when missing.
func TierLabel(itemID string) string {
	if n := TierNumber(itemID); n > 0 {
		return fmt.Sprintf("T%d", n)
	}
	return "T?"
}

// DisplayName turns an identifier like T5_MAIN_SWORD@2 into "Broadsword T5".
// Unknown base codes are title-cased from the identifier itself.
func DisplayName(itemID string) string {
	tier := ""
	if m := tierRe.FindStringSubmatch(itemID); m != nil {
		tier = "T" + m[1]
	}
	code := enchantRe.ReplaceAllString(itemID, "")
	code = tierRe.ReplaceAllString(code, "")
	name, ok := itemNames[code]
	if !ok {
		name = titleCase(code)
	}
	if tier == "" {
		return name
	}
	return name + " " + tier
}

// IconURL returns the public render URL for an item at a quality level.
func IconURL(itemID string, quality int) string {
	if quality <= 0 {
		quality = 1
	}
	return fmt.Sprintf("%s/%s?quality=%d", renderBaseURL, itemID, quality)
}

func titleCase(code string) string {
	parts := strings.Split(strings.ToLower(code), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		// Drop set-variant markers like "set3" from display names.
		if strings.HasPrefix(p, "set") && len(p) == 4 {
			parts[i] = ""
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	out := strings.Join(parts, " ")
	return strings.Join(strings.Fields(out), " ")
}
