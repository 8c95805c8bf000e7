package goquery_test

const duckDuckGoHTML = `<!DOCTYPE html>
<html>
<body>
<form id="search_form_homepage"><input name="kl" value="us-en"></form>
<div class="results">
  <div class="result">
    <h2><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.org%2Fmagnets">Magnets for kids</a></h2>
    <a class="result__snippet">Fridge decorations in many colours.</a>
  </div>
  <div class="result">
    <h2><a class="result__a" href="https://physics.example.com/magnetism#intro">How magnets work</a></h2>
    <a class="result__snippet">Magnets work because moving charges create magnetic fields that align.</a>
  </div>
  <div class="result">
    <h2><a class="result__a" href="javascript:void(0)">Broken</a></h2>
    <a class="result__snippet">Should be skipped.</a>
  </div>
  <div class="result">
    <h2><a class="result__a" href="https://no-snippet.example.com">No snippet</a></h2>
  </div>
</div>
</body>
</html>`

const googleHTML = `<!DOCTYPE html>
<html>
<body>
<div id="rso">
  <div class="g">
    <a href="/url?q=https://en.example.org/wiki/Photosynthesis&amp;sa=U"><h3>Photosynthesis - Encyclopedia</h3></a>
    <div class="VwiC3b">Photosynthesis is the process by which plants make food from light.</div>
  </div>
</div>
</body>
</html>`
