package mapping

// defaultRenames is the canonical lucide-react to @aliimam/icons rename
// set. Where upstream naming drifted over time the current upstream name
// wins (CheckCircle2 maps to CircleCheckBig, not CircleCheck).
var defaultRenames = map[string]string{
	"AlertCircle":    "CircleAlert",
	"AlertTriangle":  "TriangleAlert",
	"AlertOctagon":   "OctagonAlert",
	"CheckCircle":    "CircleCheck",
	"CheckCircle2":   "CircleCheckBig",
	"XCircle":        "CircleX",
	"MoreHorizontal": "Ellipsis",
	"MoreVertical":   "EllipsisVertical",
	"Loader2":        "LoaderCircle",
	"PlayCircle":     "CirclePlay",
	"PauseCircle":    "CirclePause",
	"StopCircle":     "CircleStop",
	"PlusCircle":     "CirclePlus",
	"MinusCircle":    "CircleMinus",
	"HelpCircle":     "CircleHelp",
	"CalendarIcon":   "Calendar",
	"ArrowUpIcon":    "ArrowUp",
	"ArrowDownIcon":  "ArrowDown",
	"InfoIcon":       "Info",
	"Edit":           "Pencil",
	"Filter":         "ListFilter",
	"Home":           "House",
	"Unlock":         "LockOpen",
}

// defaultExcluded lists symbols with no counterpart in the replacement
// package. LucideIcon is a type, the chart icons overlap with recharts
// component names, and the git icons simply do not exist upstream.
var defaultExcluded = []string{
	"LucideIcon",
	"BarChart",
	"BarChart3",
	"PieChart",
	"FileBarChart",
	"GitCommit",
	"GitBranch",
	"GitFork",
	"GitPullRequest",
}

// Default returns the built-in lucide-react migration table.
func Default() *Table {
	table, err := New(defaultRenames, defaultExcluded)
	if err != nil {
		// The built-in table is validated by tests; reaching this is a bug.
		panic(err)
	}

	return table
}
