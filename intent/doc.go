// Package intent defines named keyword profiles that bias document selection.
//
// A Profile pairs high-priority keywords (what the caller cares about) with
// exclusion keywords (what should be filtered out) under a stable name, such
// as "user_post" or "company_post". A Store resolves names to profiles;
// unknown names fail loudly so a typo never degrades into an empty profile.
//
// Profiles are available three ways:
//
//   - BuiltinStore: profiles shipped with sift
//   - NewStaticStore: profiles assembled in code
//   - LoadFile: profiles from a YAML file
package intent
