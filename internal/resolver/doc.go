// Package resolver turns a modifier definition from a rule file into a
// modifier whose references are known.
//
// Resolution looks up the factory registered for the (value type,
// identifier) pair, lets it build the modifier, then walks the modifier's
// formula once to discover every name it reads. The walk is structural only:
// it uses formula.IgnoreVariables, so a formula may refer to a variable that
// has not been declared yet. Whether the references actually exist is checked
// later, once every rule file has been loaded.
package resolver
