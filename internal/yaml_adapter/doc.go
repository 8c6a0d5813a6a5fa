// Package yaml_adapter decodes YAML rule files into the format-agnostic
// config.Model. A YAML rule file holds the same definitions as an HCL one:
//
//	scopes:
//	  - {name: EQUIPMENT, parent: GLOBAL}
//	variables:
//	  - {name: STR, format: INTEGER}
//	objects:
//	  - {category: skill, key: Balance}
//	modifiers:
//	  - {variable: STR, identifier: ADD, value: "3+VAR1"}
package yaml_adapter
