// Package generator renders data-model source files from OpenAPI schemas.
//
// For each job the generator loads the source document, flattens its
// compositions with the resolver package, maps every property with the
// typemap package and renders one file per Object schema from an embedded
// text/template. Schemas marked ignore are skipped; Object schemas without
// properties are reported as warnings and skipped.
//
// # Targets
//
// The dart target writes json_serializable classes:
//
//	import 'package:json_annotation/json_annotation.dart';
//	import 'package:my_app/models/tag.dart';
//
//	part 'pet.g.dart';
//
//	@JsonSerializable()
//	class ApiPet {
//	  @JsonKey(name: 'tags')
//	  final Iterable<ApiTag>? tags;
//	  ...
//	}
//
// The go target writes structs with json tags, formatted with
// golang.org/x/tools/imports. Nullable fields become pointers unless their
// type already has a nil value.
//
// # Usage
//
//	g := generator.New()
//	g.Logger = parser.NewSlogAdapter(slog.Default())
//	result, err := g.GenerateJob(ctx, job)
//	if err != nil {
//		return err
//	}
//	for _, issue := range result.Issues {
//		fmt.Println(issue)
//	}
//	return result.WriteFiles()
//
// Several jobs can be run concurrently with RunJobs; a failing job never
// stops the others.
//
// Response schemas selected by a job's paths list are emitted like component
// schemas, under the name given in the entry.
package generator
