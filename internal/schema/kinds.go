package schema

func required(name string, t FieldType) Field {
	return Field{Name: name, Type: t}
}

func optional(name string, t FieldType, def any) Field {
	return Field{Name: name, Type: t, Default: def}
}

func amount() []Field {
	return []Field{required("amount", Integer)}
}

func str(name string) Field { return optional(name, String, "") }

func list(name string) Field { return optional(name, StringList, []string{}) }

func flag(name string, def bool) Field { return optional(name, Boolean, def) }

func worlds() Field { return list("worlds") }

func init() {
	register(&Kind{
		Name:     "blockbreak",
		Title:    "Scava",
		Required: amount(),
		Optional: []Field{
			str("block"),
			list("blocks"),
			flag("reverse-if-placed", false),
			flag("allow-silk-touch", true),
			flag("allow-negative-progress", true),
			worlds(),
		},
		Mutex: []MutexPair{{"block", "blocks"}},
	})
	register(&Kind{
		Name:     "blockplace",
		Title:    "Piazza",
		Required: amount(),
		Optional: []Field{
			str("block"),
			list("blocks"),
			flag("reverse-if-broken", false),
			flag("allow-negative-progress", true),
			worlds(),
		},
		Mutex: []MutexPair{{"block", "blocks"}},
	})
	register(&Kind{
		Name:     "neobrewing",
		Title:    "Crafta",
		Required: amount(),
		Optional: []Field{
			str("ingredient"),
			flag("exact-match", true),
			list("required-effects"),
			worlds(),
		},
	})
	register(&Kind{
		Name:     "consume",
		Title:    "Consuma",
		Required: amount(),
		Optional: []Field{str("item"), flag("exact-match", true), worlds()},
	})
	register(&Kind{
		Name:     "crafting",
		Title:    "Crafta",
		Required: amount(),
		Optional: []Field{str("item"), flag("exact-match", true), worlds()},
	})
	register(&Kind{
		Name:     "farming",
		Title:    "Coltiva",
		Required: amount(),
		Optional: []Field{str("block"), list("blocks"), worlds()},
		Mutex:    []MutexPair{{"block", "blocks"}},
	})
	register(&Kind{
		Name:     "inventory",
		Title:    "Ottieni",
		Required: amount(),
		Optional: []Field{
			str("item"),
			list("items"),
			flag("exact-match", true),
			flag("remove-items-when-complete", false),
			flag("allow-partial-completion", true),
			worlds(),
		},
		Mutex: []MutexPair{{"item", "items"}},
	})
	register(&Kind{
		Name:     "mobkilling",
		Title:    "Uccidi",
		Required: amount(),
		Optional: []Field{
			str("mob"),
			list("mobs"),
			str("name"),
			list("names"),
			optional("hostile", TriState, nil),
			str("item"),
			flag("exact-match", true),
			worlds(),
		},
		Mutex: []MutexPair{{"mob", "mobs"}, {"name", "names"}},
	})
	register(&Kind{
		Name:     "smelting",
		Title:    "Cuoci",
		Required: amount(),
		Optional: []Field{str("item"), flag("exact-match", true), worlds()},
	})
	register(&Kind{
		Name:     "smithing",
		Title:    "Forgia",
		Required: amount(),
		Optional: []Field{str("item"), flag("exact-match", true), worlds()},
	})
	register(&Kind{
		Name:     "enchanting",
		Title:    "Incanta",
		Required: amount(),
		Optional: []Field{
			str("item"),
			list("enchantment"),
			optional("min-level", OptionalInteger, nil),
			worlds(),
		},
	})
	register(&Kind{
		Name:     "interact",
		Title:    "Interagisci",
		Required: amount(),
		Optional: []Field{
			str("item"),
			flag("exact-match", true),
			str("block"),
			list("blocks"),
			str("action"),
			list("actions"),
			str("use-interacted-block-result"),
			list("use-interacted-block-results"),
			str("use-item-in-hand-result"),
			list("use-item-in-hand-results"),
			worlds(),
		},
		Mutex: []MutexPair{
			{"block", "blocks"},
			{"action", "actions"},
			{"use-interacted-block-result", "use-interacted-block-results"},
			{"use-item-in-hand-result", "use-item-in-hand-results"},
		},
	})
}
