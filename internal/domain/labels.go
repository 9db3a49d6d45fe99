package domain

// Human-readable names for the numeric enums osu! multiplayer payloads
// carry. Only the ruleset appears in the room payload this tool reads;
// TeamTypeName, WinConditionName and ModSelectionName cover the remaining
// legacy match enums so every enum the API family exposes resolves through
// one place. Unknown values fall through to the historical defaults the
// site uses.

func RulesetName(rulesetID int) string {
	switch rulesetID {
	case 0:
		return "osu"
	case 1:
		return "taiko"
	case 2:
		return "fruits"
	case 3:
		return "mania"
	default:
		return "osu"
	}
}

func TeamTypeName(teamType int) string {
	switch teamType {
	case 0:
		return "Head-to-Head"
	case 1:
		return "Tag Coop"
	case 2:
		return "Team VS"
	default:
		return "Tag Team VS"
	}
}

func WinConditionName(condition int) string {
	switch condition {
	case 0:
		return "Score V1"
	case 1:
		return "Accuracy"
	case 2:
		return "Combo"
	default:
		return "Score V2"
	}
}

func ModSelectionName(modType int) string {
	if modType == 0 {
		return "Selected Mods"
	}
	return "Free Mods"
}
