// Package descriptor parses return type strings used by generated API methods.
//
// The grammar is:
//
//	String | Integer | Float | BOOLEAN   primitive passthrough
//	DateTime                            ISO-8601 timestamp
//	Object                              untyped JSON value
//	File                                body written to disk
//	Array<T>                            ordered sequence of T
//	Hash<String, T>                     string-keyed mapping of T
//	Name                                registered model type
//
// A string is parsed once into a Descriptor and interpreted recursively by the
// response package:
//
//	d, err := descriptor.Parse("Array<Hash<String, Pet>>")
//	if err != nil {
//		return err
//	}
//	fmt.Println(d.Kind, d.Elem.Kind, d.Elem.Elem.Name) // Array Hash Pet
package descriptor
