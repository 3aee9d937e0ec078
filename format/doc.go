// Package format names the document formats the ogdl tools read and write.
//
// # Usage
//
//	f, err := format.ParseFormat("json")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(f.Suffix()) // .json
//
// OGDL text is the default; binary is the OGDL binary stream; XML, JSON and
// YAML are input-only formats converted to trees by package convert.
//
// # Related Packages
//
//   - github.com/signadot/ogdl-format/go-ogdl/parse - Parse OGDL text
//   - github.com/signadot/ogdl-format/go-ogdl/bin - OGDL binary codec
//   - github.com/signadot/ogdl-format/go-ogdl/convert - Foreign formats
package format
